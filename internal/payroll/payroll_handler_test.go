package payroll

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type stubCreateService struct {
	Service
	created int
	resp    PayrollResponse
}

func (s *stubCreateService) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	s.created++
	return s.resp, nil
}

func newCreateRouter(svc Service, rdb *redis.Client, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, rdb)
	r.POST("/payrolls",
		func(c *gin.Context) { c.Set("user_id", userID) },
		middleware.Idempotency(rdb),
		h.Create,
	)
	return r
}

func postCreate(t *testing.T, r *gin.Engine, body CreatePayrollRequest, idempKey string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/payrolls", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempKey)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Create_IdempotentReplay(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()

	actorID := "3f0b9d6a-1f6e-4a46-9c1e-0a4c8f2d7b11"
	employeeID := "8c41f7a2-6d35-4b8e-b20f-5a9e3c1d4f62"
	svc := &stubCreateService{resp: PayrollResponse{
		ID:     "a7c2e9d4-0b53-4f18-8e6a-2d1f7c4b9e03",
		UserID: employeeID,
		Month:  1,
		Year:   2026,
		Status: StatusDraft,
	}}
	cached, err := json.Marshal(svc.resp)
	assert.NoError(t, err)

	req := CreatePayrollRequest{UserID: employeeID, Month: 1, Year: 2026}
	cacheKey := "idemp:/payrolls:" + actorID + ":run-jan"
	lockKey := cacheKey + ":lock"

	// First request takes the lock, creates, caches the response and
	// releases the lock.
	rmock.ExpectGet(cacheKey).RedisNil()
	rmock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	rmock.ExpectSet(cacheKey, cached, idempotencyCacheTTL).SetVal("OK")
	rmock.ExpectDel(lockKey).SetVal(1)

	router := newCreateRouter(svc, rdb, actorID)

	first := postCreate(t, router, req, "run-jan")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, 1, svc.created)

	// A retry with the same key replays the cached response without
	// reaching the service.
	rmock.ExpectGet(cacheKey).SetVal(string(cached))

	second := postCreate(t, router, req, "run-jan")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), svc.resp.ID)
	assert.Equal(t, 1, svc.created)

	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestHandler_Create_ConcurrentDuplicateRejected(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()

	actorID := "3f0b9d6a-1f6e-4a46-9c1e-0a4c8f2d7b11"
	employeeID := "8c41f7a2-6d35-4b8e-b20f-5a9e3c1d4f62"
	svc := &stubCreateService{resp: PayrollResponse{ID: "x", UserID: employeeID}}

	cacheKey := "idemp:/payrolls:" + actorID + ":run-jan"
	lockKey := cacheKey + ":lock"

	rmock.ExpectGet(cacheKey).RedisNil()
	rmock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

	router := newCreateRouter(svc, rdb, actorID)

	w := postCreate(t, router, CreatePayrollRequest{UserID: employeeID, Month: 1, Year: 2026}, "run-jan")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, svc.created)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestHandler_Create_LockReleasedOnServiceError(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()

	actorID := "3f0b9d6a-1f6e-4a46-9c1e-0a4c8f2d7b11"
	svc := &failingCreateService{}

	cacheKey := "idemp:/payrolls:" + actorID + ":run-feb"
	lockKey := cacheKey + ":lock"

	// No Set on the cache key: a failed create caches nothing, but the
	// lock still comes off so the client can retry immediately.
	rmock.ExpectGet(cacheKey).RedisNil()
	rmock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	rmock.ExpectDel(lockKey).SetVal(1)

	router := newCreateRouter(svc, rdb, actorID)

	w := postCreate(t, router, CreatePayrollRequest{
		UserID: "8c41f7a2-6d35-4b8e-b20f-5a9e3c1d4f62",
		Month:  2,
		Year:   2026,
	}, "run-feb")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

type failingCreateService struct {
	Service
}

func (s *failingCreateService) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	return PayrollResponse{}, ErrPayrollNotFound
}

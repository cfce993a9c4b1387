package advance

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewRepository(gdb), mock
}

// The period gate lives in the WHERE clause: only approved advances
// with a balance whose schedule has started by (month, year) come back.
func TestRepo_FindDeductible_QueriesPeriodGate(t *testing.T) {
	repo, mock := newMockRepo(t)

	userID := uuid.New()
	rowID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "salary_advances" WHERE \(user_id = \$1 AND status = \$2 AND remaining_amount > 0\) AND \(\(deduction_start_year < \$3\) OR \(deduction_start_year = \$4 AND deduction_start_month <= \$5\)\) ORDER BY created_at`).
		WithArgs(userID.String(), StatusApproved, 2024, 2024, 3).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "amount", "monthly_deduction", "remaining_amount",
			"deduction_start_month", "deduction_start_year", "status",
		}).AddRow(rowID.String(), userID.String(), 6000.0, 1000.0, 6000.0, 1, 2024, StatusApproved))

	rows, err := repo.FindDeductible(context.Background(), userID.String(), 3, 2024)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, rowID, rows[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

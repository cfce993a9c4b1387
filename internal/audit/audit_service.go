package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Record(ctx context.Context, actorID, action, entityType, entityID, detail string) error
	GetAll(ctx context.Context, filter QueryFilter) ([]ActivityLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

// Record writes one activity entry. Failures are logged and returned but
// callers generally do not fail their own operation on a log write.
func (s *service) Record(ctx context.Context, actorID, action, entityType, entityID, detail string) error {
	entry := &ActivityLog{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	if actorID != "" {
		if actorUUID, err := uuid.Parse(actorID); err == nil {
			entry.ActorID = &actorUUID
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("record activity failed",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, filter QueryFilter) ([]ActivityLogResponse, error) {
	logs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]ActivityLogResponse, len(logs))
	for i, l := range logs {
		res[i] = mapToResponse(l)
	}
	return res, nil
}

func mapToResponse(l ActivityLog) ActivityLogResponse {
	resp := ActivityLogResponse{
		ID:         l.ID.String(),
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Detail:     l.Detail,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.ActorID != nil {
		resp.ActorID = l.ActorID.String()
	}
	return resp
}

package notification

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	engagement "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/notification/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/notification/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

// Service owns notification persistence, unread counts and best-effort live
// delivery over RabbitMQ. It satisfies the engagement Notifier contract.
type Service struct {
	repo   *repo.NotificationRepo
	mq     *MQClient
	logger *zap.SugaredLogger
}

// NewService constructs the notifier. mq may be nil, in which case
// notifications are persisted without live delivery.
func NewService(r *repo.NotificationRepo, mq *MQClient, logger *zap.SugaredLogger) *Service {
	return &Service{repo: r, mq: mq, logger: logger}
}

// Publish persists the payload, stamps it with the user's fresh unread
// count, and fans it out to the user's room. A missing MQ client or a
// publish failure is a logged no-op: no connected client is not an error.
func (s *Service) Publish(ctx context.Context, userID int64, payload engagement.NotificationPayload) error {
	if userID <= 0 {
		return apperror.Validation("user id is required")
	}
	if payload.ID == "" {
		payload.ID = uuid.NewString()
	}

	body, err := json.Marshal(payload.Payload)
	if err != nil {
		return apperror.Internalize(err)
	}
	row := &entity.Notification{
		ID:           payload.ID,
		UserID:       userID,
		Title:        payload.Title,
		Entity:       payload.Entity,
		IDEntity:     payload.IDEntity,
		Path:         payload.Path,
		TypeOfAction: payload.TypeOfAction,
		Payload:      body,
		CreatedAt:    payload.CreatedAt,
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return apperror.Internalize(err)
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return apperror.Internalize(err)
	}
	payload.CountNewNotification = unread

	if s.mq == nil {
		return nil
	}
	wire, err := json.Marshal(payload)
	if err != nil {
		return apperror.Internalize(err)
	}
	if err := s.mq.PublishJSON(ctx, "user."+strconv.FormatInt(userID, 10), wire); err != nil {
		s.logger.Warnw("live delivery failed", "user_id", userID, "err", err)
	}
	return nil
}

// List returns the user's notifications, newest first.
func (s *Service) List(ctx context.Context, userID int64, limit int) ([]entity.Notification, error) {
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rows, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return rows, nil
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return apperror.Validation("notification id is required")
	}
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return apperror.Internalize(err)
	}
	if !ok {
		return apperror.NotFound("notification not found")
	}
	return nil
}

// Nop is a Notifier that drops everything; used in tests and when the
// engagement flow runs without a notification backend.
type Nop struct{}

func (Nop) Publish(context.Context, int64, engagement.NotificationPayload) error { return nil }

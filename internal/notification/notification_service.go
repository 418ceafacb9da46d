package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type NotificationResponse struct {
	ID        string  `json:"id"`
	LeaveID   string  `json:"leave_id"`
	EventType string  `json:"event_type"`
	Message   string  `json:"message"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	ListForRecipient(ctx context.Context, recipientID string) ([]NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListForRecipient(ctx context.Context, recipientID string) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindAllByRecipient(ctx, recipientID)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("recipient_id", recipientID), zap.Error(err))
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = NotificationResponse{
			ID:        n.ID.String(),
			LeaveID:   n.LeaveID.String(),
			EventType: n.EventType,
			Message:   n.Message,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.ReadAt != nil {
			v := n.ReadAt.Format(time.RFC3339)
			resp[i].ReadAt = &v
		}
	}
	return resp, nil
}

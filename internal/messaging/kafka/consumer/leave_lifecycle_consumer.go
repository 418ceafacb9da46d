package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-leave/internal/events"
	"go-leave/internal/notification"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle turns leave lifecycle events into persisted
// notifications. A submitted leave notifies the manager; a decision or
// cancellation notifies the employee.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationRepo notification.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		n, err := buildNotification(event)
		if err != nil {
			log.Error("build notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationRepo.Create(ctx, n); err != nil {
			log.Error("persist notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("notification created from leave event",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
		)
	}
}

func buildNotification(event events.LeaveLifecycleEvent) (*notification.Notification, error) {
	leaveID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		return nil, fmt.Errorf("invalid leave id: %w", err)
	}

	recipient := event.EmployeeID
	var message string

	switch event.EventType {
	case events.TypeLeaveSubmitted:
		if event.ManagerID != "" {
			recipient = event.ManagerID
		}
		message = fmt.Sprintf("A %s leave request for %d working day(s) is waiting for review", event.LeaveType, event.TotalDays)
	case events.TypeLeaveApproved:
		message = fmt.Sprintf("Your %s leave request for %d working day(s) was approved", event.LeaveType, event.TotalDays)
	case events.TypeLeaveRejected:
		message = fmt.Sprintf("Your %s leave request was rejected", event.LeaveType)
		if event.ManagerComment != "" {
			message += ": " + event.ManagerComment
		}
	case events.TypeLeaveCancelled:
		message = fmt.Sprintf("Your %s leave request was cancelled", event.LeaveType)
	default:
		return nil, fmt.Errorf("unknown event type %q", event.EventType)
	}

	recipientID, err := uuid.Parse(recipient)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient id: %w", err)
	}

	return &notification.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		LeaveID:     leaveID,
		EventType:   event.EventType,
		Message:     message,
	}, nil
}

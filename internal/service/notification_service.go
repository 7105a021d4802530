package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-helpdesk/internal/events"
)

// notificationQueueKey is the Redis list downstream notifiers consume.
const notificationQueueKey = "helpdesk:notifications"

// NotificationService forwards domain events to the notification queue.
// Delivery is best-effort: a queue failure is logged and never surfaces
// to the submission flow.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	queue      *redis.Client
}

// NewNotificationService creates the service. A nil queue client disables
// queueing but keeps event logging.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, queue *redis.Client) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		queue:      queue,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestSubmitted, n.handleEvent)
	n.dispatcher.Subscribe(events.EventRequestAssigned, n.handleEvent)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("request_id", event.RequestID))
	n.enqueue(ctx, event)
	return nil
}

func (n *NotificationService) enqueue(ctx context.Context, event events.Event) {
	if n.queue == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("failed to encode notification", zap.Error(err))
		return
	}
	if err := n.queue.RPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		n.logger.Warn("failed to enqueue notification", zap.Error(err))
	}
}

package notification

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"salonbook/models"
)

// EventChannel is the pub/sub channel reporting and notification
// consumers subscribe to.
const EventChannel = "appointments.events"

// EventEmitter publishes appointment state-change events. Emission is
// fire-and-forget: the booking engine never depends on delivery.
type EventEmitter interface {
	Emit(ctx context.Context, event models.AppointmentEvent)
}

// RedisEventEmitter publishes events on a redis pub/sub channel.
type RedisEventEmitter struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewRedisEventEmitter(client *redis.Client, logger *zap.Logger) *RedisEventEmitter {
	return &RedisEventEmitter{Client: client, Logger: logger}
}

func (e *RedisEventEmitter) Emit(ctx context.Context, event models.AppointmentEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		e.Logger.Error("failed to marshal appointment event", zap.Error(err))
		return
	}
	if err := e.Client.Publish(ctx, EventChannel, payload).Err(); err != nil {
		// Log and move on: consumers are fire-and-forget collaborators.
		e.Logger.Warn("failed to publish appointment event",
			zap.String("appointmentID", event.AppointmentID), zap.Error(err))
	}
}

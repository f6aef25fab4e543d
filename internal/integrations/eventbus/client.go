package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// Client публикует события бронирований в брокер.
// Публикация выполняется после фиксации транзакции: ошибка брокера не откатывает бронь
type Client struct {
	publisher Publisher
	timeout   time.Duration
	log       Logger
}

// NewClient создает клиент. publisher == nil означает, что события отключены
func NewClient(publisher Publisher, timeout time.Duration, log Logger) *Client {
	return &Client{
		publisher: publisher,
		timeout:   timeout,
		log:       log,
	}
}

// Enabled сообщает, подключен ли брокер
func (c *Client) Enabled() bool {
	return c != nil && c.publisher != nil
}

// NotifyWithGracefulDegradation публикует событие и только логирует ошибку.
// Используется из usecase и сервисов, где бронь уже зафиксирована
func (c *Client) NotifyWithGracefulDegradation(ctx context.Context, key string, r *domain.Reservation) {
	if !c.Enabled() {
		return
	}

	if err := c.publish(ctx, key, r); err != nil {
		c.log.Error("EventBus unavailable, event %s for reservation id=%s dropped: %v", key, r.ID, err)
		return
	}

	c.log.Info("EventBus: published %s for reservation id=%s", key, r.ID)
}

func (c *Client) publish(ctx context.Context, key string, r *domain.Reservation) error {
	if !c.Enabled() {
		return nil
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	event := toEvent(key, r)
	if err := c.publisher.PublishJSON(ctx, key, event); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, key, err)
	}

	return nil
}

func toEvent(key string, r *domain.Reservation) ReservationEvent {
	occurredAt := r.CreatedAt
	if r.CancelledAt != nil {
		occurredAt = *r.CancelledAt
	}

	return ReservationEvent{
		Type:          key,
		ReservationID: r.ID.String(),
		FacilityID:    r.FacilityID.String(),
		UserID:        r.UserID,
		Date:          r.Date.String(),
		SlotLabel:     r.SlotLabel,
		Status:        string(r.Status),
		OccurredAt:    occurredAt.UTC(),
	}
}

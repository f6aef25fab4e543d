package eventbus

import "errors"

var (
	// ErrPublish возвращается, если брокер не принял событие
	ErrPublish = errors.New("eventbus client: failed to publish event")
)

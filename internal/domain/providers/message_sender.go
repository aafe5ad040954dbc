package providers

import "context"

// MessageSender delivers a one-way text message to a configured operator
// channel (the on-call doctor's chat). Delivery failures are non-fatal to
// the intake flow and are only logged by callers.
type MessageSender interface {
	SendText(ctx context.Context, text string) (messageID string, err error)
}

package ports

import "context"

// Messenger delivers a text message to a caller.
type Messenger interface {
	Send(ctx context.Context, to string, body string) error
}

// Package delivery defines the contract every presentation surface fulfills.
package delivery

import "context"

// Delivery is a serving surface such as the HTTP API. Serve blocks until the
// surface shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}

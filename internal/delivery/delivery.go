// Package delivery defines the contract every transport adapter satisfies.
package delivery

import "context"

// Delivery is a serving surface (HTTP today). Serve blocks until the
// listener stops.
type Delivery interface {
	Serve(ctx context.Context) error
}

package usecase

import "context"

// SubscriptionUsecase maintains the realtime watches: exactly one
// pantry-list watch per signed-in identity and at most one selected-pantry
// watch at a time. Run blocks until the context is cancelled; every watch
// handle is cancelled exactly once on identity change, selection change or
// shutdown.
type SubscriptionUsecase interface {
	Run(ctx context.Context)
}

package service

import "context"

// ChangeNotifier broadcasts a generic "state changed, refetch" signal to
// calendar clients. The signal carries no payload; clients reload what
// they display. Delivery is best-effort and implementations must never
// let a failed broadcast affect the caller.
type ChangeNotifier interface {
	StateChanged(ctx context.Context)
}

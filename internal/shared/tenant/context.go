// Package tenant carries the tenant scope as an explicit context value.
// Dispatch work crosses goroutine boundaries, so the scope is captured at
// submission time and re-installed on the worker's context; nothing in the
// dispatch path reads ambient/global tenant state.
package tenant

import "context"

type ctxKey struct{}

// WithTenant returns a context scoped to the given tenant.
func WithTenant(ctx context.Context, tenantID uint) context.Context {
	return context.WithValue(ctx, ctxKey{}, tenantID)
}

// FromContext extracts the tenant scope, if any.
func FromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(ctxKey{}).(uint)
	return id, ok
}

package interfaces

import "context"

// ReadinessProbe runs the aggregate post-configuration connectivity and
// validity checks. The wizard only orchestrates its timeout and boolean
// result.
type ReadinessProbe interface {
	RunAllChecks(ctx context.Context) (bool, error)
}

// ProbeFunc adapts a function to the ReadinessProbe interface.
type ProbeFunc func(ctx context.Context) (bool, error)

// RunAllChecks implements ReadinessProbe.
func (f ProbeFunc) RunAllChecks(ctx context.Context) (bool, error) { return f(ctx) }

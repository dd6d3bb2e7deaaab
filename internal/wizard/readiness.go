package wizard

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// verifyStatus runs the aggregate readiness check under the configured
// timeout. A passing check advises the operator to proceed; a failing one
// stays silent. When the deadline expires the session's bindings are
// discarded and the timeout is surfaced to the caller.
func (c *Controller) verifyStatus(ctx context.Context) (bool, error) {
	if c.probe == nil {
		return true, nil
	}
	timeout := time.Duration(c.cfg.CreateTimeout * float64(time.Second))
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type checkResult struct {
		ok  bool
		err error
	}
	done := make(chan checkResult, 1)
	go func() {
		ok, err := c.probe.RunAllChecks(checkCtx)
		done <- checkResult{ok, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return false, r.err
		}
		if r.ok {
			c.fe.Notify("\nEnter \"start\" to start the strategy.")
		}
		return r.ok, nil
	case <-checkCtx.Done():
		c.fe.Notify("\nA network error prevented the connection check to complete. See logs for more details.")
		c.log.Error("readiness check timed out", zap.Duration("timeout", timeout))
		c.discardBindings()
		return false, NewReadinessTimeoutError(timeout)
	}
}

package wizard

// Token is the single cancellation flag shared across a session. Setting it
// is the only cancellation mechanism; every prompt routine checks it before
// reading input and after receiving a result. Access is strictly sequential
// (one outstanding prompt at a time), so no locking is needed.
type Token struct {
	cancelled bool
}

// NewToken creates a fresh, uncancelled token.
func NewToken() *Token { return &Token{} }

// Cancel sets the flag. Once set it is the sole authority for terminating
// any in-flight prompt iteration.
func (t *Token) Cancel() { t.cancelled = true }

// Cancelled reports whether cancellation has been signaled.
func (t *Token) Cancelled() bool { return t.cancelled }

// Reset clears the flag. Only the routine that absorbs the cancellation
// (the controller's stop path) may call it.
func (t *Token) Reset() { t.cancelled = false }

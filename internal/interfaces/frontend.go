package interfaces

import "context"

// FrontEnd is the terminal line-editing front end the wizard drives. Every
// ReadLine is the cooperative suspension point of the whole engine: control
// returns to the front end's event loop until the operator answers.
type FrontEnd interface {
	// ClearInput discards any pending prefilled input.
	ClearInput()

	// SetHiddenInput suppresses echo of raw operator input while the
	// wizard owns the session.
	SetHiddenInput(hidden bool)

	// SetPlaceholder toggles placeholder mode while the front end is busy
	// with wizard prompts, so stray input is not processed mid-flow.
	SetPlaceholder(on bool)

	// ChangePrompt replaces the persistent prompt string.
	ChangePrompt(prompt string)

	// Prefill seeds the next ReadLine with editable text.
	Prefill(text string)

	// ReadLine suspends until the operator submits a line. Input is masked
	// when masked is true. An operator interrupt is not returned as an
	// error; it trips the session's cancellation token instead.
	ReadLine(ctx context.Context, prompt string, masked bool) (string, error)

	// Notify shows a message to the operator.
	Notify(message string)
}

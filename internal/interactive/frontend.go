package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	"wizard-cli/internal/wizard"
)

// Terminal is the survey-backed front end for wizard sessions. An operator
// interrupt (ctrl-c / escape) trips the session's cancellation token rather
// than surfacing as an error, so every engine observes cancellation through
// the one shared flag.
type Terminal struct {
	tok *wizard.Token
	out io.Writer
	in  *bufio.Reader

	promptString string
	prefill      string
	hidden       bool
	placeholder  bool
}

// NewTerminal creates a front end bound to the session's cancellation
// token.
func NewTerminal(tok *wizard.Token) *Terminal {
	return &Terminal{
		tok:          tok,
		out:          os.Stdout,
		in:           bufio.NewReader(os.Stdin),
		promptString: ">>> ",
	}
}

// ClearInput discards pending prefilled input.
func (t *Terminal) ClearInput() { t.prefill = "" }

// SetHiddenInput suppresses echo of raw operator input.
func (t *Terminal) SetHiddenInput(hidden bool) { t.hidden = hidden }

// SetPlaceholder toggles placeholder mode while the wizard owns the
// session.
func (t *Terminal) SetPlaceholder(on bool) { t.placeholder = on }

// ChangePrompt replaces the persistent prompt string.
func (t *Terminal) ChangePrompt(prompt string) { t.promptString = prompt }

// Prefill seeds the next ReadLine with editable text.
func (t *Terminal) Prefill(text string) { t.prefill = text }

// ReadLine suspends until the operator submits a line. Masked reads use a
// password prompt and never echo. Outside a terminal (piped or scripted
// input) it falls back to plain line reading so the wizard stays usable in
// tests and scripts.
func (t *Terminal) ReadLine(ctx context.Context, prompt string, masked bool) (string, error) {
	prefill := t.prefill
	t.prefill = ""

	if err := ctx.Err(); err != nil {
		t.tok.Cancel()
		return "", nil
	}
	if !term.IsTerminal(int(syscall.Stdin)) {
		return t.fallbackReadLine(prompt, prefill, masked)
	}

	var answer string
	var err error
	if masked {
		err = survey.AskOne(&survey.Password{Message: prompt}, &answer)
	} else {
		err = survey.AskOne(&survey.Input{Message: prompt, Default: prefill}, &answer)
	}
	if err == terminal.InterruptErr {
		t.tok.Cancel()
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// fallbackReadLine reads one line without survey when stdin is not a
// terminal. The prefill cannot be edited inline here, so in placeholder mode
// it is shown as a hint and an empty submit takes it verbatim, matching
// survey's Default handling. Submitted answers are echoed into the output
// transcript unless input is masked or hidden-input mode is on. EOF counts
// as cancellation: the operator cannot answer any further prompt.
func (t *Terminal) fallbackReadLine(prompt, prefill string, masked bool) (string, error) {
	if t.placeholder && prefill != "" {
		prompt = fmt.Sprintf("%s[%s] ", prompt, prefill)
	}
	fmt.Fprint(t.out, prompt)

	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF {
		t.tok.Cancel()
	}

	answer := strings.TrimSpace(line)
	if answer == "" && prefill != "" && !t.tok.Cancelled() {
		answer = prefill
	}
	if !t.hidden && !masked && answer != "" {
		fmt.Fprintln(t.out, answer)
	}
	return answer, nil
}

// Notify shows a message to the operator.
func (t *Terminal) Notify(message string) {
	fmt.Fprintln(t.out, message)
}

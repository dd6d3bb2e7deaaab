package wizard

import (
	"context"
	"path/filepath"

	"wizard-cli/internal/schema"
)

// cancelInput, when scripted, trips the cancellation token instead of
// answering the prompt, mimicking an operator interrupt mid-read.
const cancelInput = "\x00cancel"

// scriptedFrontEnd replays a fixed list of operator answers and records
// everything the wizard shows.
type scriptedFrontEnd struct {
	tok    *Token
	inputs []string

	prompts      []string
	masked       []bool
	notices      []string
	prefills     []string
	promptString string
	hiddenLog    []bool
	placeholders []bool
}

func newScriptedFrontEnd(tok *Token, inputs ...string) *scriptedFrontEnd {
	return &scriptedFrontEnd{tok: tok, inputs: inputs}
}

func (f *scriptedFrontEnd) ClearInput()            { f.prefills = nil }
func (f *scriptedFrontEnd) SetHiddenInput(h bool)  { f.hiddenLog = append(f.hiddenLog, h) }
func (f *scriptedFrontEnd) SetPlaceholder(on bool) { f.placeholders = append(f.placeholders, on) }
func (f *scriptedFrontEnd) ChangePrompt(p string)  { f.promptString = p }
func (f *scriptedFrontEnd) Prefill(text string)    { f.prefills = append(f.prefills, text) }
func (f *scriptedFrontEnd) Notify(message string)  { f.notices = append(f.notices, message) }

func (f *scriptedFrontEnd) ReadLine(ctx context.Context, prompt string, masked bool) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.masked = append(f.masked, masked)
	if len(f.inputs) == 0 {
		// Script exhausted: the operator walks away
		f.tok.Cancel()
		return "", nil
	}
	in := f.inputs[0]
	f.inputs = f.inputs[1:]
	if in == cancelInput {
		f.tok.Cancel()
		return "", nil
	}
	return in, nil
}

// memStore is an in-memory ConfigStore.
type memStore struct {
	saved    map[string]*schema.ConfigModel
	legacy   map[string]*schema.LegacyConfigMap
	copied   map[string]string // dest -> src
	existing map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		saved:    make(map[string]*schema.ConfigModel),
		legacy:   make(map[string]*schema.LegacyConfigMap),
		copied:   make(map[string]string),
		existing: make(map[string]bool),
	}
}

func (s *memStore) Save(path string, model *schema.ConfigModel) error {
	s.saved[path] = model
	s.existing[path] = true
	return nil
}

func (s *memStore) SaveLegacy(path string, cm *schema.LegacyConfigMap) error {
	s.legacy[path] = cm
	s.existing[path] = true
	return nil
}

func (s *memStore) CopyTemplate(src, dest string) error {
	s.copied[dest] = src
	s.existing[dest] = true
	return nil
}

func (s *memStore) Exists(path string) bool { return s.existing[path] }

// fakeCatalogue maps strategy names to pre-built schemas.
type fakeCatalogue struct {
	order   []string
	schemas map[string]schema.Schema
}

func newFakeCatalogue() *fakeCatalogue {
	return &fakeCatalogue{schemas: make(map[string]schema.Schema)}
}

func (c *fakeCatalogue) add(name string, s schema.Schema) {
	c.order = append(c.order, name)
	if s != nil {
		c.schemas[name] = s
	}
}

func (c *fakeCatalogue) Lookup(strategy string) (schema.Schema, bool) {
	s, ok := c.schemas[strategy]
	return s, ok
}

func (c *fakeCatalogue) Strategies() []string { return c.order }

func (c *fakeCatalogue) TemplatePath(strategy string) string {
	return filepath.Join("templates", "conf_"+strategy+"_TEMPLATE.yml")
}

func (c *fakeCatalogue) DefaultFileName(strategy string) string {
	return "conf_" + strategy + "_1.yml"
}

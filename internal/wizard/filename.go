package wizard

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"wizard-cli/internal/interfaces"
)

// FormatFileName normalises a config file name, appending .yml when the
// name carries no extension.
func FormatFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if filepath.Ext(name) == "" {
		name += ".yml"
	}
	return name
}

// promptNewFileName asks for a new, non-colliding file name. The catalogue's
// proposal is prefilled; an empty answer or a collision re-triggers the
// prompt rather than silently overwriting. Cancellation returns empty.
func promptNewFileName(
	ctx context.Context,
	fe interfaces.FrontEnd,
	tok *Token,
	cat interfaces.SchemaCatalogue,
	store interfaces.ConfigStore,
	confDir string,
	strategy string,
) (string, error) {
	for {
		fe.Prefill(cat.DefaultFileName(strategy))
		input, err := fe.ReadLine(ctx, "Enter a new file name for your configuration >>> ", false)
		if err != nil {
			return "", err
		}
		if tok.Cancelled() {
			return "", nil
		}
		name := FormatFileName(input)
		if name == "" {
			fe.Notify("Value is required.")
			continue
		}
		if store.Exists(filepath.Join(confDir, name)) {
			fe.Notify(fmt.Sprintf("%s file already exists, please enter a new name.", name))
			continue
		}
		return name, nil
	}
}

package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a secret value, such as the session token the
// backend expects in its cookie.
type Source struct {
	// Name gives error messages context about which secret failed to load.
	Name string
	// Value is an inline secret provided via configuration or flags.
	Value string
	// File points to a file holding the secret. When set it takes precedence
	// over Value.
	File string
}

// Load resolves the secret from the source, trimmed of surrounding space. An
// error is returned when neither File nor Value yield a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}

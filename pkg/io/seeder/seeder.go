// Package seeder ensures a runtime configuration file exists in the project
// root, derived from a template or built-in defaults.
package seeder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
)

const (
	// ConfigFileName is the runtime configuration file, flat key=value text.
	ConfigFileName = ".env"

	// TemplateFileName is the optional template copied verbatim when no
	// configuration exists yet.
	TemplateFileName = ".env.example"

	filePerm = 0o600
)

// defaultEntries is the built-in configuration set: provider selection plus
// placeholder credential, model, and parameter fields. Order is preserved in
// the written file.
//
//nolint:gochecknoglobals
var defaultEntries = []struct {
	key   string
	value string
}{
	{"AI_PROVIDER", "openai"},
	{"OPENAI_API_KEY", "your-openai-api-key"},
	{"OPENAI_MODEL", "gpt-4-turbo-preview"},
	{"OPENAI_TEMPERATURE", "0.3"},
	{"OPENAI_MAX_TOKENS", "2000"},
	{"GEMINI_API_KEY", "your-gemini-api-key"},
	{"GEMINI_MODEL", "gemini-1.5-flash"},
}

// Seeder seeds the runtime configuration file.
type Seeder struct {
	writer io.Writer
}

// NewSeeder creates a seeder writing notifications to writer.
func NewSeeder(writer io.Writer) *Seeder {
	return &Seeder{writer: writer}
}

// Seed ensures <root>/.env exists. Precedence, in order:
//  1. the file already exists: left untouched, no merge, no overwrite —
//     operator edits are always preserved;
//  2. a template exists: copied verbatim;
//  3. otherwise the built-in default set is written.
func (s *Seeder) Seed(root string) error {
	target := filepath.Join(root, ConfigFileName)

	_, err := os.Stat(target)
	if err == nil {
		notify.Activityf(s.writer, "configuration %s exists, leaving untouched", ConfigFileName)

		return nil
	}

	template := filepath.Join(root, TemplateFileName)

	content, err := os.ReadFile(template)
	if err == nil {
		writeErr := os.WriteFile(target, content, filePerm)
		if writeErr != nil {
			return fmt.Errorf("seed configuration from template: %w", writeErr)
		}

		notify.Generatef(s.writer, "created %s from %s", ConfigFileName, TemplateFileName)

		return nil
	}

	err = os.WriteFile(target, []byte(DefaultContent()), filePerm)
	if err != nil {
		return fmt.Errorf("seed default configuration: %w", err)
	}

	notify.Generatef(s.writer, "created %s with default settings", ConfigFileName)

	return nil
}

// DefaultContent renders the built-in default configuration.
func DefaultContent() string {
	var builder strings.Builder

	for _, entry := range defaultEntries {
		builder.WriteString(entry.key)
		builder.WriteString("=")
		builder.WriteString(entry.value)
		builder.WriteString("\n")
	}

	return builder.String()
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadAnswers reads a YAML answers file and validates it with the same field
// table the interactive wizard uses.
func LoadAnswers(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse answers file %s: %w", path, err)
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("answers file %s: %w", path, err)
	}

	return &req, nil
}

// WriteAnswers writes the request to a YAML answers file with a descriptive
// header. The file carries plain-text credentials, hence mode 0600.
func WriteAnswers(req *Request, path string) error {
	yamlBytes, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(answersHeader(path))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func answersHeader(path string) string {
	return fmt.Sprintf(`# hostforge answers file
# Generated: %s
#
# Feed this to a non-interactive run:
#   hostforge provision --answers %s
#
# Contains plain-text credentials. Keep it private.
`, time.Now().Format(time.RFC3339), path)
}

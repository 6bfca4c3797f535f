// Package monitor validates queue events against a JSON schema before they
// reach business logic.
package monitor

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// EventMonitor validates incoming event payloads against a compiled schema.
type EventMonitor struct {
	schema *gojsonschema.Schema
}

// NewEventMonitor compiles the given schema document.
func NewEventMonitor(schemaJSON []byte) (*EventMonitor, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile event schema: %w", err)
	}
	return &EventMonitor{schema: schema}, nil
}

// Validate checks the event body against the schema. It returns true if
// valid, or false and the list of violations.
func (m *EventMonitor) Validate(body []byte) (bool, []string, error) {
	result, err := m.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return false, nil, fmt.Errorf("validate event: %w", err)
	}
	if result.Valid() {
		return true, nil, nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return false, violations, nil
}

// FormatErrors joins schema violations into a single log-friendly string.
func FormatErrors(violations []string) string {
	if len(violations) == 0 {
		return ""
	}
	return "validation errors: " + strings.Join(violations, "; ")
}

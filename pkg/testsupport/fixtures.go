// Package testsupport holds fixture helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalue/pkg/definition"
	"github.com/goliatone/go-formvalue/pkg/form"
)

// MustLoadForm parses a definition fixture, failing the test on error.
func MustLoadForm(t *testing.T, path string) form.Form {
	t.Helper()

	built, err := definition.LoadFile(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return built
}

// LoadPayload reads a JSON golden holding an encoded submission map.
func LoadPayload(path string) (map[string]string, error) {
	if path == "" {
		return nil, errors.New("testsupport: payload path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read payload: %w", err)
	}
	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal payload: %w", err)
	}
	return out, nil
}

// AssertPayloadGolden compares got with the golden at path. When
// UPDATE_GOLDENS is set the golden is rewritten instead.
func AssertPayloadGolden(t *testing.T, path string, got map[string]string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") != "" {
		WriteGolden(t, path, got)
		return
	}
	want, err := LoadPayload(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalue/internal/archive"
	"github.com/goliatone/go-formvalue/internal/prompt"
	"github.com/goliatone/go-formvalue/pkg/testsupport"
)

var (
	signupPath   = filepath.Join("..", "..", "pkg", "definition", "testdata", "signup.yaml")
	signupGolden = filepath.Join("..", "..", "pkg", "definition", "testdata", "signup.golden.json")
	contactPath  = filepath.Join("..", "..", "pkg", "definition", "testdata", "contact.json")
	accountsPath = filepath.Join("..", "..", "pkg", "openapi", "testdata", "accounts.yaml")
)

type scriptedDriver struct {
	inputs    []string
	textAreas []string
	selects   []int
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := d.inputs[0]
	d.inputs = d.inputs[1:]
	return val, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, errors.New("no confirm scripted")
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	val := d.selects[0]
	d.selects = d.selects[1:]
	return val, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (d *scriptedDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	if len(d.textAreas) == 0 {
		return "", errors.New("no textarea scripted")
	}
	val := d.textAreas[0]
	d.textAreas = d.textAreas[1:]
	return val, nil
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDB, EnvFormat} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func run(t *testing.T, options []Option, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	options = append([]Option{WithEnvFiles(), WithLogOutput(io.Discard)}, options...)
	cmd := NewRootCmd(options...)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestEncode_JSONMatchesGolden(t *testing.T) {
	clearEnv(t)
	stdout, _, err := run(t, nil, "encode", signupPath)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	testsupport.AssertPayloadGolden(t, signupGolden, got)
}

func TestEncode_TextFormat(t *testing.T) {
	clearEnv(t)
	stdout, _, err := run(t, nil, "encode", "--format", "text", contactPath)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "Message=Hello\nOffice=51.500000,-0.120000\nTopic=Support\nemail=ada@example.com\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_ValidateReportsFields(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	doc := "title: Broken\nsections:\n  - rows:\n      - kind: text\n        title: Name\n        key: name\n        validators:\n          - rule: required\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, stderr, err := run(t, nil, "encode", "--validate", path)
	if !errors.Is(err, errInvalidSubmission) {
		t.Fatalf("expected errInvalidSubmission, got %v", err)
	}
	if !strings.Contains(stderr, "name: value is required") {
		t.Fatalf("expected field message, got %q", stderr)
	}
}

func TestFillSaveAndHistory(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	driver := &scriptedDriver{
		inputs:    []string{"grace@example.com", "51.5,-0.12"},
		textAreas: []string{"Hi"},
		selects:   []int{0},
	}

	stdout, _, err := run(t, []Option{WithDriver(driver)}, "fill", "--save", "--db", dbPath, contactPath)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	var saved []archive.Submission
	if err := json.Unmarshal([]byte(stdout), &saved); err != nil {
		t.Fatalf("decode fill output: %v\n%s", err, stdout)
	}
	if len(saved) != 1 || saved[0].Form != "Contact" {
		t.Fatalf("unexpected saved submission %+v", saved)
	}
	want := map[string]string{
		"email":   "grace@example.com",
		"Message": "Hi",
		"Topic":   "Sales",
		"Office":  "51.500000,-0.120000",
	}
	if diff := cmp.Diff(want, saved[0].Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	t.Setenv(EnvDB, dbPath)
	stdout, _, err = run(t, nil, "history", "Contact")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var listed []archive.Submission
	if err := json.Unmarshal([]byte(stdout), &listed); err != nil {
		t.Fatalf("decode history: %v\n%s", err, stdout)
	}
	if len(listed) != 1 || listed[0].ID != saved[0].ID {
		t.Fatalf("unexpected history %+v", listed)
	}

	stdout, _, err = run(t, nil, "history", "--format", "text", "--id", saved[0].ID)
	if err != nil {
		t.Fatalf("history --id: %v", err)
	}
	if !strings.HasPrefix(stdout, saved[0].ID+"\t") || !strings.Contains(stdout, "  Topic=Sales\n") {
		t.Fatalf("unexpected text history %q", stdout)
	}

	stdout, _, err = run(t, nil, "history", "Signup")
	if err != nil {
		t.Fatalf("history empty: %v", err)
	}
	if strings.TrimSpace(stdout) != "[]" {
		t.Fatalf("expected empty list, got %q", stdout)
	}
}

func TestFill_PrintsWithoutSave(t *testing.T) {
	clearEnv(t)
	driver := &scriptedDriver{
		inputs:    []string{"grace@example.com", ""},
		textAreas: []string{"Hi"},
		selects:   []int{1},
	}
	stdout, _, err := run(t, []Option{WithDriver(driver)}, "fill", "-f", "text", contactPath)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := "Message=Hi\nOffice=\nTopic=Support\nemail=grace@example.com\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_Summary(t *testing.T) {
	clearEnv(t)
	stdout, _, err := run(t, nil, "import", "--operation", "createAccount", accountsPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var summary formSummary
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, stdout)
	}
	if summary.Title != "Create account" {
		t.Fatalf("title: got %q", summary.Title)
	}
	found := false
	for _, row := range summary.Rows {
		if row.Key == "address.city" {
			found = row.Value == "Lisbon" && row.Section == "Mailing address" && row.Kind == "text"
		}
	}
	if !found {
		t.Fatalf("address.city row missing or wrong: %+v", summary.Rows)
	}
}

func TestImport_RequiresOperation(t *testing.T) {
	clearEnv(t)
	if _, _, err := run(t, nil, "import", accountsPath); err == nil {
		t.Fatalf("expected missing flag error")
	}
}

func TestFormatFromEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte(EnvFormat+"=text\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	stdout, _, err := run(t, []Option{WithEnvFiles(envFile)}, "encode", contactPath)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(stdout, "Message=Hello\n") {
		t.Fatalf("expected text output, got %q", stdout)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	clearEnv(t)
	if _, _, err := run(t, nil, "encode", "--format", "xml", contactPath); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestSubmissionName(t *testing.T) {
	cases := []struct{ flag, title, source, want string }{
		{"custom", "Title", "a/b.yaml", "custom"},
		{"", "Title", "a/b.yaml", "Title"},
		{"", " ", "a/signup.yaml", "signup"},
	}
	for _, tc := range cases {
		if got := submissionName(tc.flag, tc.title, tc.source); got != tc.want {
			t.Errorf("submissionName(%q, %q, %q) = %q, want %q", tc.flag, tc.title, tc.source, got, tc.want)
		}
	}
}

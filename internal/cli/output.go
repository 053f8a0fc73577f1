package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goliatone/go-formvalue/internal/archive"
	"github.com/goliatone/go-formvalue/pkg/form"
)

func (a *app) writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func (a *app) writePayload(w io.Writer, payload map[string]string) error {
	if a.format == formatJSON {
		return a.writeJSON(w, payload)
	}
	for _, key := range sortedKeys(payload) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, payload[key]); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) writeSubmissions(w io.Writer, subs []archive.Submission) error {
	if a.format == formatJSON {
		if subs == nil {
			subs = []archive.Submission{}
		}
		return a.writeJSON(w, subs)
	}
	for _, sub := range subs {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", sub.ID, sub.CreatedAt.Format("2006-01-02 15:04:05"), sub.Form); err != nil {
			return err
		}
		for _, key := range sortedKeys(sub.Payload) {
			if _, err := fmt.Fprintf(w, "  %s=%s\n", key, sub.Payload[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

type rowSummary struct {
	Section string `json:"section,omitempty"`
	Kind    string `json:"kind"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value"`
}

type formSummary struct {
	Title string       `json:"title"`
	Rows  []rowSummary `json:"rows"`
}

func summarize(f form.Form) formSummary {
	out := formSummary{Title: f.Title, Rows: []rowSummary{}}
	for _, section := range f.Sections {
		for _, row := range section.Rows {
			encoded := row.EncodedValue()
			if len(encoded) == 0 {
				out.Rows = append(out.Rows, rowSummary{Section: section.Title, Kind: string(row.Kind())})
				continue
			}
			for _, key := range sortedKeys(encoded) {
				out.Rows = append(out.Rows, rowSummary{
					Section: section.Title,
					Kind:    string(row.Kind()),
					Key:     key,
					Value:   encoded[key],
				})
			}
		}
	}
	return out
}

func (a *app) writeSummary(w io.Writer, f form.Form) error {
	summary := summarize(f)
	if a.format == formatJSON {
		return a.writeJSON(w, summary)
	}
	if _, err := fmt.Fprintf(w, "%s\n", summary.Title); err != nil {
		return err
	}
	for _, row := range summary.Rows {
		if _, err := fmt.Fprintf(w, "  %-16s %-24s %s\n", row.Kind, row.Key, row.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeValidation(w io.Writer, mapping form.ErrorMapping) {
	for _, key := range sortedKeys(mapping.Fields) {
		fmt.Fprintf(w, "%s: %s\n", key, strings.Join(mapping.Fields[key], "; "))
	}
	for _, message := range mapping.Form {
		fmt.Fprintln(w, message)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

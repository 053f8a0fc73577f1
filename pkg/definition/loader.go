package definition

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalue/pkg/form"
)

// Parse decodes a JSON or YAML document and builds the form it describes.
// source names the document in error messages.
func Parse(data []byte, source string) (form.Form, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return form.Form{}, err
	}
	return Build(doc, source)
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (form.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return form.Form{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS walks fsys and parses every JSON/YAML document, keyed by path. A nil
// filesystem yields an empty map.
func LoadFS(fsys fs.FS) (map[string]form.Form, error) {
	forms := make(map[string]form.Form)
	if fsys == nil {
		return forms, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		built, err := Parse(data, path)
		if err != nil {
			return err
		}
		forms[path] = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func parseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("definition: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = Document{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return Document{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML", source)
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

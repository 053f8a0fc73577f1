package openapi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalue/internal/labels"
	"github.com/goliatone/go-formvalue/pkg/form"
)

var (
	// ErrOperationNotFound reports an operation id absent from the document.
	ErrOperationNotFound = errors.New("openapi importer: operation not found")
	// ErrNoRequestBody reports an operation without an object request body.
	ErrNoRequestBody = errors.New("openapi importer: operation has no object request body")
)

var mediaTypePreference = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// Option configures an Importer.
type Option func(*Importer)

// WithLabeler overrides how property names become row titles.
func WithLabeler(labeler func(string) string) Option {
	return func(i *Importer) {
		if labeler != nil {
			i.labeler = labeler
		}
	}
}

// WithRegistry swaps the kind registry.
func WithRegistry(registry *KindRegistry) Option {
	return func(i *Importer) {
		if registry != nil {
			i.registry = registry
		}
	}
}

// Importer converts OpenAPI operations into forms.
type Importer struct {
	labeler  func(string) string
	registry *KindRegistry
}

// New constructs an Importer with the default labeler and registry.
func New(options ...Option) *Importer {
	imp := &Importer{
		labeler:  labels.Default,
		registry: NewKindRegistry(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(imp)
		}
	}
	return imp
}

// Import is shorthand for New(options...).Import.
func Import(ctx context.Context, data []byte, operationID string, options ...Option) (form.Form, error) {
	return New(options...).Import(ctx, data, operationID)
}

// Import loads the document and builds a form from the request body of the
// operation. operationID may also be "method:/path" for operations without an
// id.
func (i *Importer) Import(ctx context.Context, data []byte, operationID string) (form.Form, error) {
	if err := ctx.Err(); err != nil {
		return form.Form{}, err
	}
	if len(data) == 0 {
		return form.Form{}, errors.New("openapi importer: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return form.Form{}, fmt.Errorf("openapi importer: load document: %w", err)
	}

	op, err := findOperation(doc, operationID)
	if err != nil {
		return form.Form{}, err
	}
	schema := requestSchema(op)
	if schema == nil || len(schema.Properties) == 0 {
		return form.Form{}, fmt.Errorf("%w: %s", ErrNoRequestBody, operationID)
	}

	title := strings.TrimSpace(op.Summary)
	switch {
	case title != "":
	case op.OperationID != "":
		title = i.labeler(op.OperationID)
	default:
		title = strings.TrimSpace(operationID)
	}

	var sections []form.Section
	if err := i.collect(&sections, "", "", schema, map[*openapi3.Schema]bool{}); err != nil {
		return form.Form{}, err
	}
	return form.New(title, sections...), nil
}

// collect appends a section for the scalar properties of schema followed by
// one section per nested object, depth first. Objects already on the current
// path are recursive references and are left out.
func (i *Importer) collect(sections *[]form.Section, sectionTitle, prefix string, schema *openapi3.Schema, path map[*openapi3.Schema]bool) error {
	path[schema] = true
	defer delete(path, schema)

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var (
		rows   []form.Value
		nested []string
	)
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		if path[ref.Value] {
			continue
		}
		if hasType(ref.Value, openapi3.TypeObject) && len(ref.Value.Properties) > 0 {
			nested = append(nested, name)
			continue
		}
		prop := Property{
			Name:     name,
			Path:     joinPath(prefix, name),
			Title:    i.title(name, ref.Value),
			Schema:   ref.Value,
			Required: required[name],
		}
		value, _, ok := i.registry.Resolve(prop)
		if !ok {
			continue
		}
		validators, err := validatorsFor(prop)
		if err != nil {
			return err
		}
		rows = append(rows, attachValidators(value, validators))
	}

	if len(rows) > 0 {
		*sections = append(*sections, form.NewSection(sectionTitle, rows...))
	}
	for _, name := range nested {
		child := schema.Properties[name].Value
		if err := i.collect(sections, i.title(name, child), joinPath(prefix, name), child, path); err != nil {
			return err
		}
	}
	return nil
}

func (i *Importer) title(name string, schema *openapi3.Schema) string {
	if schema != nil && strings.TrimSpace(schema.Title) != "" {
		return strings.TrimSpace(schema.Title)
	}
	return i.labeler(name)
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	id := strings.TrimSpace(operationID)
	if id == "" {
		return nil, errors.New("openapi importer: operation id is required")
	}
	if doc.Paths == nil {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			if op.OperationID == id || strings.EqualFold(method+":"+path, id) {
				return op, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range mediaTypePreference {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func validatorsFor(prop Property) ([]form.Validator, error) {
	var out []form.Validator
	if prop.Required {
		out = append(out, form.Required())
	}
	schema := prop.Schema
	if !hasType(schema, openapi3.TypeString) {
		return out, nil
	}
	if schema.MinLength > 0 {
		out = append(out, form.MinLength(int(schema.MinLength)))
	}
	if schema.MaxLength != nil {
		out = append(out, form.MaxLength(int(*schema.MaxLength)))
	}
	if pattern := strings.TrimSpace(schema.Pattern); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("openapi importer: property %s: pattern: %w", prop.Path, err)
		}
		out = append(out, form.MatchPattern(re))
	}
	return out, nil
}

// attachValidators sets validators on the row kinds that accept them. Other
// kinds are returned unchanged.
func attachValidators(value form.Value, validators []form.Validator) form.Value {
	if len(validators) == 0 {
		return value
	}
	switch v := value.(type) {
	case form.TextValue:
		v.Validators = validators
		return v
	case form.NumericalValue:
		v.Validators = validators
		return v
	case form.NoteValue:
		v.Validators = validators
		return v
	}
	return value
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

package form

import (
	"sync"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// CustomValue carries an application-defined payload. Each entry of Fields
// becomes its own key in the submission, so CustomKey and Title do not
// participate in encoding.
type CustomValue struct {
	Title           string
	CustomKey       string
	Fields          map[string]string
	ReuseIdentifier string

	id uuid.UUID
}

// NewCustomValue constructs a custom row.
func NewCustomValue(title string, fields map[string]string) CustomValue {
	return CustomValue{Title: title, Fields: copyFields(fields), id: newID()}
}

// WithFields returns a copy holding fields.
func (v CustomValue) WithFields(fields map[string]string) CustomValue {
	v.Fields = copyFields(fields)
	v.id = newID()
	return v
}

// WithField returns a copy with key set to value.
func (v CustomValue) WithField(key, value string) CustomValue {
	fields := copyFields(v.Fields)
	if fields == nil {
		fields = make(map[string]string, 1)
	}
	fields[key] = value
	v.Fields = fields
	v.id = newID()
	return v
}

func copyFields(fields map[string]string) map[string]string {
	if fields == nil {
		return nil
	}
	out := make(map[string]string, len(fields))
	for key, value := range fields {
		out[key] = value
	}
	return out
}

func (v CustomValue) ID() uuid.UUID       { return v.id }
func (v CustomValue) OverrideKey() string { return v.CustomKey }
func (v CustomValue) Item() Item          { return wrap(KindCustom, v) }

// EncodedValue implements Encodable.
func (v CustomValue) EncodedValue() map[string]string {
	out := copyFields(v.Fields)
	if out == nil {
		out = map[string]string{}
	}
	return out
}

var (
	webPolicyOnce sync.Once
	webPolicy     *bluemonday.Policy
)

func webSanitizer() *bluemonday.Policy {
	webPolicyOnce.Do(func() {
		webPolicy = bluemonday.UGCPolicy()
	})
	return webPolicy
}

// WebValue points at web content, either a URL or inline HTML.
type WebValue struct {
	Title     string
	CustomKey string
	URL       string
	HTML      string

	id uuid.UUID
}

// NewWebValue constructs a web row for url.
func NewWebValue(title, url string) WebValue {
	return WebValue{Title: title, URL: url, id: newID()}
}

// WithURL returns a copy pointing at url.
func (v WebValue) WithURL(url string) WebValue {
	v.URL = url
	v.id = newID()
	return v
}

// WithHTML returns a copy holding inline markup.
func (v WebValue) WithHTML(html string) WebValue {
	v.HTML = html
	v.id = newID()
	return v
}

// SanitizedHTML strips scripts, event handlers and other unsafe markup from
// HTML using a user-generated-content policy.
func (v WebValue) SanitizedHTML() string {
	if v.HTML == "" {
		return ""
	}
	return webSanitizer().Sanitize(v.HTML)
}

func (v WebValue) ID() uuid.UUID       { return v.id }
func (v WebValue) OverrideKey() string { return v.CustomKey }
func (v WebValue) Item() Item          { return wrap(KindWeb, v) }
func (v WebValue) IsSelectable() bool  { return true }

// EncodedValue implements Encodable.
func (v WebValue) EncodedValue() map[string]string {
	return single(keyFor(v.CustomKey, v.Title, "Web"), v.URL)
}

package openapi

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalue/pkg/form"
)

// Built-in rule names registered by NewKindRegistry.
const (
	RuleSwitch      = "switch"
	RuleMultiSelect = "multi-select"
	RuleSelect      = "select"
	RuleDate        = "date"
	RuleDateTime    = "date-time"
	RuleTime        = "time"
	RuleWeb         = "web"
	RuleSlider      = "slider"
	RuleStepper     = "stepper"
	RuleNumerical   = "numerical"
	RuleTokens      = "tokens"
	RuleNote        = "note"
	RuleText        = "text"
)

var now = time.Now

const sliderPlaces = 2

// Property is a single request body property handed to registry rules.
type Property struct {
	// Name is the property name within its parent object.
	Name string
	// Path is the dotted path from the request body root.
	Path string
	// Title is the row title resolved through the labeler.
	Title    string
	Schema   *openapi3.Schema
	Required bool
}

// Matcher decides whether a rule handles the property.
type Matcher func(prop Property) bool

// Builder produces the initial row value for a matched property.
type Builder func(prop Property) form.Value

type rule struct {
	name     string
	priority int
	match    Matcher
	build    Builder
	order    int
}

// KindRegistry maps property schemas to row values. Higher priority wins; ties
// fall back to registration order. An empty registry never resolves.
type KindRegistry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewKindRegistry constructs a registry with the built-in rules registered.
func NewKindRegistry() *KindRegistry {
	reg := &KindRegistry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a rule. Blank names and nil callbacks are ignored.
func (r *KindRegistry) Register(name string, priority int, match Matcher, build Builder) {
	if r == nil || match == nil || build == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    match,
		build:    build,
		order:    len(r.rules),
	})
}

// Resolve returns the value built by the highest priority matching rule and
// that rule's name.
func (r *KindRegistry) Resolve(prop Property) (form.Value, string, bool) {
	if r == nil || prop.Schema == nil {
		return nil, "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if !entry.match(prop) {
			continue
		}
		if value := entry.build(prop); value != nil {
			return value, entry.name, true
		}
	}
	return nil, "", false
}

func (r *KindRegistry) registerBuiltins() {
	r.Register(RuleSwitch, 90, func(p Property) bool {
		return hasType(p.Schema, openapi3.TypeBoolean)
	}, func(p Property) form.Value {
		on, _ := p.Schema.Default.(bool)
		v := form.NewSwitchValue(p.Title, on)
		v.CustomKey = p.Path
		return v
	})

	r.Register(RuleMultiSelect, 85, func(p Property) bool {
		return hasType(p.Schema, openapi3.TypeArray) && p.Schema.Items != nil &&
			p.Schema.Items.Value != nil && len(p.Schema.Items.Value.Enum) > 0
	}, func(p Property) form.Value {
		options := stringifyEnum(p.Schema.Items.Value.Enum)
		defaults, _ := p.Schema.Default.([]any)
		return form.NewListSelectionValue(p.Title, options,
			form.ListSelectionType(form.SelectionMultiple),
			form.ListSelectedIndices(indicesOf(options, stringifyEnum(defaults))...),
			form.ListCustomKey(p.Path),
		)
	})

	r.Register(RuleSelect, 80, func(p Property) bool {
		return !hasType(p.Schema, openapi3.TypeArray) && !hasType(p.Schema, openapi3.TypeObject) &&
			len(p.Schema.Enum) > 0
	}, func(p Property) form.Value {
		options := stringifyEnum(p.Schema.Enum)
		opts := []form.ListSelectionOption{form.ListCustomKey(p.Path)}
		if p.Schema.Default != nil {
			opts = append(opts, form.ListSelectedIndices(indicesOf(options, []string{stringify(p.Schema.Default)})...))
		}
		return form.NewListSelectionValue(p.Title, options, opts...)
	})

	r.Register(RuleDate, 70, stringFormat("date"), func(p Property) form.Value {
		v := form.NewDateValueFromString(p.Title, stringify(p.Schema.Default), form.DefaultDateExportFormat)
		v.CustomKey = p.Path
		return v
	})

	r.Register(RuleDateTime, 70, stringFormat("date-time"), func(p Property) form.Value {
		date := now()
		if parsed, err := time.Parse(time.RFC3339, stringify(p.Schema.Default)); err == nil {
			date = parsed
		}
		v := form.NewDateTimeValue(p.Title, date)
		v.CustomKey = p.Path
		return v
	})

	r.Register(RuleTime, 70, stringFormat("time"), func(p Property) form.Value {
		v := form.NewTimeInputValue(p.Title, stringify(p.Schema.Default))
		v.CustomKey = p.Path
		return v
	})

	r.Register(RuleWeb, 70, stringFormat("uri"), func(p Property) form.Value {
		v := form.NewWebValue(p.Title, stringify(p.Schema.Default))
		v.CustomKey = p.Path
		return v
	})

	r.Register(RuleSlider, 60, func(p Property) bool {
		return hasType(p.Schema, openapi3.TypeNumber) && p.Schema.Min != nil && p.Schema.Max != nil
	}, func(p Property) form.Value {
		minimum, maximum := *p.Schema.Min, *p.Schema.Max
		value, ok := numeric(p.Schema.Default)
		if !ok {
			value = minimum
		}
		v := form.NewSliderValue(p.Title, value, minimum, maximum)
		v.CustomKey = p.Path
		v.DecimalPlaces = sliderPlaces
		return v
	})

	r.Register(RuleStepper, 60, func(p Property) bool {
		return hasType(p.Schema, openapi3.TypeInteger) && p.Schema.Min != nil && p.Schema.Max != nil
	}, func(p Property) form.Value {
		minimum, maximum := *p.Schema.Min, *p.Schema.Max
		value, ok := numeric(p.Schema.Default)
		if !ok {
			value = minimum
		}
		v := form.NewStepperValue(p.Title, value, minimum, maximum)
		v.CustomKey = p.Path
		if p.Schema.MultipleOf != nil && *p.Schema.MultipleOf > 0 {
			v.Step = *p.Schema.MultipleOf
		}
		return v
	})

	r.Register(RuleNumerical, 50, func(p Property) bool {
		return hasType(p.Schema, openapi3.TypeNumber) || hasType(p.Schema, openapi3.TypeInteger)
	}, func(p Property) form.Value {
		v := form.NewNumericalValue(p.Title, stringify(p.Schema.Default))
		v.CustomKey = p.Path
		if hasType(p.Schema, openapi3.TypeInteger) {
			v.NumberType = form.NumberTypeInteger
		}
		return v
	})

	r.Register(RuleTokens, 40, func(p Property) bool {
		return hasType(p.Schema, openapi3.TypeArray) && p.Schema.Items != nil &&
			hasType(p.Schema.Items.Value, openapi3.TypeString)
	}, func(p Property) form.Value {
		defaults, _ := p.Schema.Default.([]any)
		tokens := make([]form.Token, 0, len(defaults))
		for _, entry := range stringifyEnum(defaults) {
			tokens = append(tokens, form.Token{Title: entry})
		}
		v := form.NewTokenValue(p.Title, tokens...)
		v.CustomKey = p.Path
		return v
	})

	r.Register(RuleNote, 20, func(p Property) bool {
		if !hasType(p.Schema, openapi3.TypeString) {
			return false
		}
		format := strings.ToLower(strings.TrimSpace(p.Schema.Format))
		return format == "textarea" || format == "multiline"
	}, func(p Property) form.Value {
		v := form.NewNoteValue(p.Title, stringify(p.Schema.Default))
		v.CustomKey = p.Path
		v.Placeholder = p.Schema.Description
		return v
	})

	r.Register(RuleText, 10, func(p Property) bool {
		return hasType(p.Schema, openapi3.TypeString)
	}, func(p Property) form.Value {
		v := form.NewTextValue(p.Title, stringify(p.Schema.Default))
		v.CustomKey = p.Path
		v.Placeholder = p.Schema.Description
		return v
	})
}

func hasType(schema *openapi3.Schema, want string) bool {
	if schema == nil || schema.Type == nil {
		return false
	}
	for _, typ := range schema.Type.Slice() {
		if typ == want {
			return true
		}
	}
	return false
}

func stringFormat(format string) Matcher {
	return func(p Property) bool {
		return hasType(p.Schema, openapi3.TypeString) && strings.EqualFold(strings.TrimSpace(p.Schema.Format), format)
	}
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) < 1e15 {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, stringify(value))
	}
	return out
}

func numeric(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(typed, 64)
		return parsed, err == nil
	}
	return 0, false
}

func indicesOf(options, values []string) []int {
	var out []int
	for _, value := range values {
		for idx, option := range options {
			if option == value {
				out = append(out, idx)
				break
			}
		}
	}
	return out
}

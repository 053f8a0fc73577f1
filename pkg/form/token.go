package form

import (
	"strings"

	"github.com/google/uuid"
)

// Token is one entry of a TokenValue.
type Token struct {
	Title      string `json:"title" yaml:"title"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
}

func (t Token) encoded() string {
	if t.Identifier != "" {
		return t.Identifier
	}
	return t.Title
}

// TokenValue holds an ordered set of tokens, as typed into a token field.
type TokenValue struct {
	Title       string
	CustomKey   string
	Tokens      []Token
	Placeholder string

	id uuid.UUID
}

// NewTokenValue constructs a token row.
func NewTokenValue(title string, tokens ...Token) TokenValue {
	return TokenValue{Title: title, Tokens: append([]Token(nil), tokens...), id: newID()}
}

// WithTokens returns a copy holding tokens.
func (v TokenValue) WithTokens(tokens []Token) TokenValue {
	v.Tokens = append([]Token(nil), tokens...)
	v.id = newID()
	return v
}

// AddToken returns a copy with token appended. Blank tokens and tokens already
// present (same identifier, or same title when neither has one) are ignored.
func (v TokenValue) AddToken(token Token) TokenValue {
	tokens := append([]Token(nil), v.Tokens...)
	if strings.TrimSpace(token.Title) != "" && !containsToken(tokens, token) {
		tokens = append(tokens, token)
	}
	return v.WithTokens(tokens)
}

// RemoveToken returns a copy without the token at index. Out of range indices
// leave the tokens unchanged.
func (v TokenValue) RemoveToken(index int) TokenValue {
	tokens := append([]Token(nil), v.Tokens...)
	if index >= 0 && index < len(tokens) {
		tokens = append(tokens[:index], tokens[index+1:]...)
	}
	return v.WithTokens(tokens)
}

func containsToken(tokens []Token, candidate Token) bool {
	for _, token := range tokens {
		if candidate.Identifier != "" || token.Identifier != "" {
			if token.Identifier == candidate.Identifier {
				return true
			}
			continue
		}
		if strings.EqualFold(token.Title, candidate.Title) {
			return true
		}
	}
	return false
}

func (v TokenValue) ID() uuid.UUID       { return v.id }
func (v TokenValue) OverrideKey() string { return v.CustomKey }
func (v TokenValue) Item() Item          { return wrap(KindToken, v) }

// EncodedValue implements Encodable. Tokens encode their identifier, falling
// back to the title, joined by commas.
func (v TokenValue) EncodedValue() map[string]string {
	parts := make([]string, 0, len(v.Tokens))
	for _, token := range v.Tokens {
		parts = append(parts, token.encoded())
	}
	return single(keyFor(v.CustomKey, v.Title, "Tokens"), joinCSV(parts))
}

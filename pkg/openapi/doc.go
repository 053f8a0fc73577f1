// Package openapi builds form.Form values from the JSON request body of an
// OpenAPI 3 operation. Property schemas are mapped to row kinds through a
// priority ordered KindRegistry; nested objects become their own sections and
// every row carries its dotted property path as its custom key so submissions
// line up with the request body.
package openapi

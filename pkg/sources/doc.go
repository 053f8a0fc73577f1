// Package sources provides named option sources that list selection rows can
// load lazily through form.Loading. Form definitions reference them by name
// ("source: timezones").
package sources

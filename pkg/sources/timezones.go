package sources

import (
	"bufio"
	"context"
	"embed"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formvalue/pkg/form"
)

//go:embed data/timezones.txt
var dataFS embed.FS

const zonesPath = "data/timezones.txt"

var embeddedZones = sync.OnceValues(func() ([]string, error) {
	f, err := dataFS.Open(zonesPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadZones(f)
})

// DefaultZones returns a copy of the embedded zone list, sorted.
func DefaultZones() ([]string, error) {
	zones, err := embeddedZones()
	if err != nil {
		return nil, err
	}
	return slices.Clone(zones), nil
}

// LoadZones reads one zone per line. Blank lines, "#" comments and repeats
// are dropped; the result is sorted.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("sources: missing reader")
	}
	var zones []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			zones = append(zones, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	slices.Sort(zones)
	return slices.Compact(zones), nil
}

// ZoneSource is an item source over a zone list narrowed by Query. Items use
// the zone name as title and identifier. Zones starting with the query come
// before zones that only contain it. Limit <= 0 keeps every match.
type ZoneSource struct {
	Zones []string
	Query string
	Limit int
}

// Timezones returns an item source matching the embedded zones the way
// ZoneSource does.
func Timezones(query string, limit int) form.ItemSource {
	return zoneLoader{query: query, limit: limit}
}

type zoneLoader struct {
	query string
	limit int
}

func (l zoneLoader) LoadItems(ctx context.Context) ([]form.ListItem, error) {
	zones, err := embeddedZones()
	if err != nil {
		return nil, err
	}
	return ZoneSource{Zones: zones, Query: l.query, Limit: l.limit}.LoadItems(ctx)
}

// LoadItems implements form.ItemSource.
func (s ZoneSource) LoadItems(ctx context.Context) ([]form.ListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(s.Query))

	var leading, inner []form.ListItem
	for _, zone := range s.Zones {
		lower := strings.ToLower(zone)
		item := form.ListItem{Title: zone, Identifier: zone}
		switch {
		case strings.HasPrefix(lower, query):
			leading = append(leading, item)
		case strings.Contains(lower, query):
			inner = append(inner, item)
		}
	}
	byTitle := func(a, b form.ListItem) int { return strings.Compare(a.Title, b.Title) }
	slices.SortStableFunc(leading, byTitle)
	slices.SortStableFunc(inner, byTitle)

	items := append(leading, inner...)
	if s.Limit > 0 && len(items) > s.Limit {
		items = items[:s.Limit]
	}
	if items == nil {
		items = []form.ListItem{}
	}
	return items, nil
}

package pages

import (
	"errors"
	"fmt"

	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
)

// ErrIncomplete is returned by Validate when a page has no render function.
var ErrIncomplete = errors.New("page registry incomplete")

// RenderFunc draws one page. It must treat the snapshot as read-only.
type RenderFunc func(ctx *Context)

// Descriptor binds a page to its title, render function and optional
// display predicate. A nil EnabledIf marks a core page.
type Descriptor struct {
	ID        PageID
	Title     string
	Render    RenderFunc
	EnabledIf func(settings.Display) bool
}

// Registry maps every PageID to its descriptor.
type Registry struct {
	descriptors []Descriptor
	byID        map[PageID]Descriptor
}

// NewRegistry builds a registry from descriptors and validates it.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[PageID]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if !d.ID.Valid() {
			return nil, fmt.Errorf("%w: unknown page %d", ErrIncomplete, int(d.ID))
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: %s registered twice", ErrIncomplete, d.ID)
		}
		r.byID[d.ID] = d
		r.descriptors = append(r.descriptors, d)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that every page has exactly one render function.
func (r *Registry) Validate() error {
	var missing []string
	for _, id := range All() {
		d, ok := r.byID[id]
		if !ok || d.Render == nil {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: no render function for %v", ErrIncomplete, missing)
	}
	return nil
}

// Lookup returns the descriptor of a page.
func (r *Registry) Lookup(id PageID) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Descriptors returns the registered descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Active is BuildActivePages over the registry's descriptors.
func (r *Registry) Active(d settings.Display) []PageID {
	return BuildActivePages(r.descriptors, d)
}

// BuildActivePages lists the pages to show for the given display settings:
// core pages in declaration order followed by enabled optional pages in
// declaration order.
func BuildActivePages(descriptors []Descriptor, d settings.Display) []PageID {
	present := make(map[PageID]Descriptor, len(descriptors))
	for _, desc := range descriptors {
		present[desc.ID] = desc
	}

	var core, optional []PageID
	for _, id := range All() {
		desc, ok := present[id]
		if !ok {
			continue
		}
		if desc.EnabledIf == nil {
			core = append(core, id)
			continue
		}
		if desc.EnabledIf(d) {
			optional = append(optional, id)
		}
	}
	return append(core, optional...)
}

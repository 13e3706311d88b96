// Package taxonomy loads the catalog of groups and their divisions.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/geodrill/internal/language"
	"github.com/verte-zerg/geodrill/internal/model"
)

var (
	// ErrUnknownGroup reports a group id missing from the catalog.
	ErrUnknownGroup = errors.New("unknown group")
	// ErrInvalidCatalog reports a structurally invalid catalog file.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Names maps language suffixes ("en", "zh") to display names.
type Names map[string]string

// DivisionSpec is a division as written in a catalog file.
type DivisionSpec struct {
	ID     string `yaml:"id" toml:"id"`
	Name   Names  `yaml:"name" toml:"name"`
	Ignore bool   `yaml:"ignore" toml:"ignore"`
}

// GroupSpec is a group as written in a catalog file.
type GroupSpec struct {
	ID        string         `yaml:"id" toml:"id"`
	Name      Names          `yaml:"name" toml:"name"`
	Divisions []DivisionSpec `yaml:"divisions" toml:"divisions"`
}

// File is the top-level catalog document.
type File struct {
	Groups []GroupSpec `yaml:"groups" toml:"groups"`
}

type group struct {
	id         model.GroupID
	names      Names
	order      []model.DivisionID
	divisions  map[model.DivisionID]Names
	hasIgnored bool
}

// Catalog is an immutable, validated view of a catalog file.
type Catalog struct {
	order  []model.GroupID
	groups map[model.GroupID]*group
}

// New validates f and builds a Catalog. Ignored divisions are dropped.
func New(f File) (*Catalog, error) {
	if len(f.Groups) == 0 {
		return nil, fmt.Errorf("%w: no groups", ErrInvalidCatalog)
	}
	c := &Catalog{groups: make(map[model.GroupID]*group, len(f.Groups))}
	for _, gs := range f.Groups {
		id := model.GroupID(gs.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: group without id", ErrInvalidCatalog)
		}
		if _, dup := c.groups[id]; dup {
			return nil, fmt.Errorf("%w: duplicate group %q", ErrInvalidCatalog, id)
		}
		g := &group{id: id, names: gs.Name, divisions: map[model.DivisionID]Names{}}
		seen := map[model.DivisionID]struct{}{}
		for _, ds := range gs.Divisions {
			did := model.DivisionID(ds.ID)
			if did == "" {
				return nil, fmt.Errorf("%w: group %q has a division without id", ErrInvalidCatalog, id)
			}
			if _, dup := seen[did]; dup {
				return nil, fmt.Errorf("%w: group %q has duplicate division %q", ErrInvalidCatalog, id, did)
			}
			seen[did] = struct{}{}
			if ds.Ignore {
				g.hasIgnored = true
				continue
			}
			if !hasName(ds.Name) {
				return nil, fmt.Errorf("%w: group %q division %q has no name", ErrInvalidCatalog, id, did)
			}
			g.order = append(g.order, did)
			g.divisions[did] = ds.Name
		}
		if len(g.order) == 0 {
			return nil, fmt.Errorf("%w: group %q has no quizzable divisions", ErrInvalidCatalog, id)
		}
		c.order = append(c.order, id)
		c.groups[id] = g
	}
	return c, nil
}

func hasName(names Names) bool {
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			return true
		}
	}
	return false
}

// Groups returns group ids in catalog order.
func (c *Catalog) Groups() []model.GroupID {
	return append([]model.GroupID(nil), c.order...)
}

// Default returns the first group of the catalog.
func (c *Catalog) Default() model.GroupID {
	return c.order[0]
}

// Has reports whether group exists.
func (c *Catalog) Has(group model.GroupID) bool {
	_, ok := c.groups[group]
	return ok
}

// Next returns the group after group in catalog order, wrapping around.
func (c *Catalog) Next(group model.GroupID) model.GroupID {
	for i, id := range c.order {
		if id == group {
			return c.order[(i+1)%len(c.order)]
		}
	}
	return c.Default()
}

// DivisionIDs returns the quizzable divisions of group in catalog order.
// The result is never empty.
func (c *Catalog) DivisionIDs(group model.GroupID) ([]model.DivisionID, error) {
	g, ok := c.groups[group]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGroup, group)
	}
	return append([]model.DivisionID(nil), g.order...), nil
}

// HasIgnored reports whether group had divisions excluded from quizzing.
func (c *Catalog) HasIgnored(group model.GroupID) bool {
	g, ok := c.groups[group]
	return ok && g.hasIgnored
}

// GroupName returns the localized group name, or the id when missing.
func (c *Catalog) GroupName(group model.GroupID, lang language.Code) string {
	if g, ok := c.groups[group]; ok {
		if name := g.names[lang.Suffix()]; name != "" {
			return name
		}
	}
	return string(group)
}

// DivisionName returns the localized division name, or the id when missing.
func (c *Catalog) DivisionName(group model.GroupID, id model.DivisionID, lang language.Code) string {
	if g, ok := c.groups[group]; ok {
		if name := g.divisions[id][lang.Suffix()]; name != "" {
			return name
		}
	}
	return string(id)
}

// DivisionNames returns every non-empty localized name of a division.
func (c *Catalog) DivisionNames(group model.GroupID, id model.DivisionID) []string {
	g, ok := c.groups[group]
	if !ok {
		return nil
	}
	var names []string
	for _, code := range language.All() {
		if name := g.divisions[id][code.Suffix()]; name != "" {
			names = append(names, name)
		}
	}
	return names
}

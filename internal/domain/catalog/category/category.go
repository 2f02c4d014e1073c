package category

import (
	"fmt"
	"strings"
)

// Category is a tier of the administrative hierarchy.
type Category string

// Category constants, top tier first.
const (
	Division Category = "division"
	District Category = "district"
	Upazila  Category = "upazila"
)

// hierarchy lists the categories top-down.
var hierarchy = []Category{Division, District, Upazila}

// All returns every known category in hierarchy order.
func All() []Category {
	out := make([]Category, len(hierarchy))
	copy(out, hierarchy)
	return out
}

// IsValid checks if the category is one of the known tiers.
func (c Category) IsValid() bool {
	return c.Level() >= 0
}

// Level returns the depth of the category (0 for divisions), or -1 if unknown.
func (c Category) Level() int {
	for i, h := range hierarchy {
		if h == c {
			return i
		}
	}
	return -1
}

// Parent returns the category one tier above, if any.
func (c Category) Parent() (Category, bool) {
	lvl := c.Level()
	if lvl <= 0 {
		return "", false
	}
	return hierarchy[lvl-1], true
}

// Child returns the category one tier below, if any.
func (c Category) Child() (Category, bool) {
	lvl := c.Level()
	if lvl < 0 || lvl == len(hierarchy)-1 {
		return "", false
	}
	return hierarchy[lvl+1], true
}

// Parse accepts singular or plural names ("district", "Districts").
func Parse(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "s")
	c := Category(name)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// ParseList parses a comma-separated category list. Empty input yields nil.
func ParseList(s string) ([]Category, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]Category, 0, len(parts))
	for _, p := range parts {
		c, err := Parse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

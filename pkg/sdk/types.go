package bdgeo

// Category is one tier of the administrative hierarchy.
type Category string

// Category constants, top tier first.
const (
	Division Category = "division"
	District Category = "district"
	Upazila  Category = "upazila"
)

// MatchedField names the region field that produced a hit.
type MatchedField string

// Matched field constants.
const (
	FieldName   MatchedField = "primary"
	FieldBnName MatchedField = "secondary"
	FieldSlug   MatchedField = "slug"
)

// Region is one catalog entry.
type Region struct {
	ID         string
	Name       string
	BnName     string
	Slug       string
	ParentID   string
	Attributes map[string]string
}

// Match is a single scored hit.
type Match struct {
	Category Category
	Region   Region
	Score    float64
	Field    MatchedField
}

// Group holds one category's hits, best first.
type Group struct {
	Category Category
	Matches  []Match
}

// Results is the outcome of a multi-category search.
type Results struct {
	Groups []Group
	Total  int
}

// Get returns the hits of one category, nil if it was not searched.
func (r Results) Get(c Category) []Match {
	for _, g := range r.Groups {
		if g.Category == c {
			return g.Matches
		}
	}
	return nil
}

// Suggestion is one autocomplete entry; it carries no score.
type Suggestion struct {
	Category Category
	Region   Region
	Field    MatchedField
}

// AddressPart is one tier of an Address.
type AddressPart struct {
	Category Category
	Region   Region
}

// Address is a region followed by its ancestors up to the division.
type Address struct {
	English string // "Savar, Dhaka, Dhaka Division"
	Bengali string
	Parts   []AddressPart
}

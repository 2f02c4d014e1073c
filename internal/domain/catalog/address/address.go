package address

import (
	"strings"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
)

const (
	separator      = ", "
	divisionSuffix = " Division"
	// বিভাগ is "division" in Bengali.
	divisionSuffixBn = " বিভাগ"
)

// Part is one tier of an address.
type Part struct {
	Category category.Category
	Entity   *entity.Entity
}

// Address is a region with its ancestors, most specific tier first.
type Address struct {
	Parts []Part
}

// English formats the address from English names: "Savar, Dhaka, Dhaka Division".
func (a Address) English() string {
	return a.format((*entity.Entity).Name, divisionSuffix)
}

// Bengali formats the address from Bengali names: "সাভার, ঢাকা, ঢাকা বিভাগ".
// Parts without a Bengali name are skipped.
func (a Address) Bengali() string {
	return a.format((*entity.Entity).BnName, divisionSuffixBn)
}

func (a Address) format(name func(*entity.Entity) string, suffix string) string {
	names := make([]string, 0, len(a.Parts))
	for _, p := range a.Parts {
		n := name(p.Entity)
		if n == "" {
			continue
		}
		if p.Category == category.Division {
			n += suffix
		}
		names = append(names, n)
	}
	return strings.Join(names, separator)
}

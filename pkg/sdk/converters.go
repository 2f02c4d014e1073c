package bdgeo

import (
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/address"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/result"
)

func fromEntity(e *entity.Entity) Region {
	return Region{
		ID:         e.ID(),
		Name:       e.Name(),
		BnName:     e.BnName(),
		Slug:       e.Slug(),
		ParentID:   e.ParentID(),
		Attributes: e.Attributes(),
	}
}

func fromMatch(m result.Match) Match {
	return Match{
		Category: Category(m.Category()),
		Region:   fromEntity(m.Entity()),
		Score:    m.Score(),
		Field:    MatchedField(m.Field()),
	}
}

func fromAggregate(agg result.Aggregate) Results {
	res := Results{
		Groups: make([]Group, len(agg.Groups)),
		Total:  agg.Total(),
	}
	for i, g := range agg.Groups {
		ms := make([]Match, len(g.Matches))
		for j, m := range g.Matches {
			ms[j] = fromMatch(m)
		}
		res.Groups[i] = Group{Category: Category(g.Category), Matches: ms}
	}
	return res
}

func fromAddress(a address.Address) Address {
	parts := make([]AddressPart, len(a.Parts))
	for i, p := range a.Parts {
		parts[i] = AddressPart{Category: Category(p.Category), Region: fromEntity(p.Entity)}
	}
	return Address{English: a.English(), Bengali: a.Bengali(), Parts: parts}
}

// Package bdgeo embeds the region search engine in a Go program without
// running the HTTP server.
//
// The client loads the catalog once (the embedded Bangladesh data set by
// default) and answers every query from memory:
//
//	client, _ := bdgeo.New(ctx)
//	res, _ := client.Search(ctx, "Dahka", bdgeo.Fuzzy())
//	for _, g := range res.Groups {
//	    for _, m := range g.Matches {
//	        fmt.Println(g.Category, m.Region.Name, m.Score)
//	    }
//	}
//
//	best, ok, _ := client.Quick(ctx, "savar")
//	sugg, _ := client.Autocomplete(ctx, "gazi", bdgeo.Limit(5))
//	district, _ := client.Region(ctx, bdgeo.District, "dhaka")
//
// A custom catalog directory holds divisions, districts and upazilas files
// in YAML or JSON; see WithCatalogDir.
package bdgeo

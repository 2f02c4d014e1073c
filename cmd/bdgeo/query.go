package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/bdgeo/internal/domain"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/mode"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/result"
	chiTransport "github.com/kailas-cloud/bdgeo/internal/transport/chi"
)

// errNoMatch is returned by quick when nothing clears the threshold.
var errNoMatch = errors.New("no match")

// searchFlags holds CLI flags shared by search, quick and autocomplete.
type searchFlags struct {
	limit         int
	threshold     float64
	categories    []string
	caseSensitive bool
	fuzzy         bool
	english       bool
	bengali       bool
	noSlug        bool
	jsonOutput    bool
}

// overrides turns the flags the user actually set into option overrides.
func (f *searchFlags) overrides(cmd *cobra.Command) (options.Overrides, error) {
	var ov options.Overrides
	flags := cmd.Flags()
	if flags.Changed("limit") {
		ov.Limit = options.Ptr(f.limit)
	}
	if flags.Changed("threshold") {
		ov.Threshold = options.Ptr(f.threshold)
	}
	if flags.Changed("case-sensitive") {
		ov.CaseSensitive = options.Ptr(f.caseSensitive)
	}
	if flags.Changed("no-slug") {
		ov.IncludeSlug = options.Ptr(!f.noSlug)
	}
	if len(f.categories) > 0 {
		cats, err := category.ParseList(strings.Join(f.categories, ","))
		if err != nil {
			return ov, fmt.Errorf("%w: --category: %w", domain.ErrInvalidOptions, err)
		}
		ov.Categories = cats
	}
	return ov, nil
}

func (f *searchFlags) mode() mode.Mode {
	switch {
	case f.fuzzy:
		return mode.Fuzzy
	case f.english:
		return mode.English
	case f.bengali:
		return mode.Bengali
	default:
		return mode.Default
	}
}

func addCommonFlags(cmd *cobra.Command, f *searchFlags) {
	cmd.Flags().IntVarP(&f.limit, "limit", "n", options.DefaultLimit, "Maximum results (per category for search)")
	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "Restrict to categories: division, district, upazila (repeatable)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output JSON")
}

func addMatchFlags(cmd *cobra.Command, f *searchFlags) {
	cmd.Flags().Float64VarP(&f.threshold, "threshold", "t", options.DefaultThreshold, "Minimum score in [0,1]")
	cmd.Flags().BoolVar(&f.caseSensitive, "case-sensitive", false, "Compare without case folding")
	cmd.Flags().BoolVar(&f.noSlug, "no-slug", false, "Do not match slugs")
}

func newSearchCmd(g *globalOptions) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank regions in every category by similarity",
		Long: `Rank regions in every category by similarity to the query.

Scores: exact match 1.0, substring 0.8-1.0, otherwise edit-distance similarity.
The limit applies to each category separately.

Examples:
  bdgeo search Dhaka
  bdgeo search Chittagong --fuzzy --category district
  bdgeo search ঢাকা --bengali --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			ov, err := f.overrides(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), *g, true)
			if err != nil {
				return err
			}
			defer a.close()

			m := f.mode()
			if err := a.search.Resolve(m, ov).Validate(); err != nil {
				return err
			}
			agg := a.search.SearchMode(cmd.Context(), m, query, ov)

			if f.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), chiTransport.NewSearchResponse(query, m, agg))
			}
			return printAggregate(cmd.OutOrStdout(), agg)
		},
	}

	addCommonFlags(cmd, &f)
	addMatchFlags(cmd, &f)
	addPresetFlags(cmd, &f)

	return cmd
}

func addPresetFlags(cmd *cobra.Command, f *searchFlags) {
	cmd.Flags().BoolVar(&f.fuzzy, "fuzzy", false, "Typo-tolerant preset (threshold 0.4 unless --threshold is set)")
	cmd.Flags().BoolVar(&f.english, "english", false, "Match English names and slugs only")
	cmd.Flags().BoolVar(&f.bengali, "bengali", false, "Match Bengali names only")
	cmd.MarkFlagsMutuallyExclusive("fuzzy", "english", "bengali")
}

func newQuickCmd(g *globalOptions) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "quick <query>",
		Short: "Print the single best match across all categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			ov, err := f.overrides(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), *g, true)
			if err != nil {
				return err
			}
			defer a.close()

			pm := f.mode()
			if err := a.search.Resolve(pm, ov).Validate(); err != nil {
				return err
			}
			m, ok := a.search.QuickMatchMode(cmd.Context(), pm, query, ov)
			if !ok {
				return fmt.Errorf("%w for %q", errNoMatch, query)
			}

			if f.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), chiTransport.NewMatchResponse(m))
			}
			return printMatches(cmd.OutOrStdout(), []result.Match{m})
		},
	}

	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "Restrict to categories: division, district, upazila (repeatable)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output JSON")
	addMatchFlags(cmd, &f)
	addPresetFlags(cmd, &f)

	return cmd
}

func newAutocompleteCmd(g *globalOptions) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:     "autocomplete <prefix>",
		Aliases: []string{"ac"},
		Short:   "List regions whose English or Bengali name starts with prefix",
		Long: `List regions whose English or Bengali name starts with prefix.

English-name matches come first, then Bengali-name matches, each in
catalog order. The limit applies to the combined list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := strings.Join(args, " ")
			ov, err := f.overrides(cmd)
			if err != nil {
				return err
			}
			if f.english {
				ov.IncludeBengali = options.Ptr(false)
			}
			if f.bengali {
				ov.IncludeEnglish = options.Ptr(false)
			}

			a, err := newApp(cmd.Context(), *g, true)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.search.Resolve(mode.Default, ov).Validate(); err != nil {
				return err
			}
			suggestions := a.search.Autocomplete(cmd.Context(), prefix, ov)

			if f.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), chiTransport.NewAutocompleteResponse(prefix, suggestions))
			}
			return printSuggestions(cmd.OutOrStdout(), suggestions)
		},
	}

	addCommonFlags(cmd, &f)
	cmd.Flags().BoolVar(&f.english, "english", false, "Check English names only")
	cmd.Flags().BoolVar(&f.bengali, "bengali", false, "Check Bengali names only")
	cmd.MarkFlagsMutuallyExclusive("english", "bengali")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printAggregate(w io.Writer, agg result.Aggregate) error {
	if agg.Total() == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	for _, g := range agg.Groups {
		if len(g.Matches) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s:\n", g.Category); err != nil {
			return err
		}
		if err := printMatches(w, g.Matches); err != nil {
			return err
		}
	}
	return nil
}

func printMatches(w io.Writer, ms []result.Match) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range ms {
		e := m.Entity()
		fmt.Fprintf(tw, "  %.3f\t%s\t%s\t%s\t%s %s\n",
			m.Score(), e.Name(), e.BnName(), m.Field(), m.Category(), e.ID())
	}
	return tw.Flush()
}

func printSuggestions(w io.Writer, ss []result.Suggestion) error {
	if len(ss) == 0 {
		_, err := fmt.Fprintln(w, "no suggestions")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range ss {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name(), s.BnName(), s.Category(), s.Field())
	}
	return tw.Flush()
}

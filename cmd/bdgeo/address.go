package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/bdgeo/internal/domain"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	chiTransport "github.com/kailas-cloud/bdgeo/internal/transport/chi"
)

func newAddressCmd(g *globalOptions) *cobra.Command {
	var (
		bengali    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "address <category> <id|slug>",
		Short: "Print a region with its district and division",
		Long: `Print a region followed by its parents, most specific first.

Examples:
  bdgeo address upazila savar
  bdgeo address district 47 --bengali`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := category.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", domain.ErrUnknownCategory, err.Error())
			}

			a, err := newApp(cmd.Context(), *g, true)
			if err != nil {
				return err
			}
			defer a.close()

			addr, err := a.catalog.Address(c, args[1])
			if err != nil {
				return err
			}

			switch {
			case jsonOutput:
				return writeJSON(cmd.OutOrStdout(), chiTransport.NewAddressResponse(addr))
			case bengali:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), addr.Bengali())
			default:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), addr.English())
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&bengali, "bengali", false, "Print Bengali names")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	cmd.MarkFlagsMutuallyExclusive("bengali", "json")

	return cmd
}

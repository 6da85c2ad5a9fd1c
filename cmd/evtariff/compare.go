package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bher20/evtariff/internal/tariff"
)

func compareCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank tariffs by estimated annual cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			ranked, err := a.svc.Comparison(cmd.Context())
			if err != nil {
				return err
			}
			return writeComparison(os.Stdout, output, ranked)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

func writeComparison(w io.Writer, format string, ranked []tariff.TariffWithCost) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	case "yaml":
		return yaml.NewEncoder(w).Encode(ranked)
	case "table", "":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTARIFF\tTYPE\tUNIT\tEV\tSTANDING\tANNUAL")
	for i, t := range ranked {
		ev := "-"
		if t.HasEVRate() {
			ev = tariff.FormatPence(*t.EVRate)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%sp/day\t%s\n",
			i+1, t.Name, t.TariffType, tariff.FormatPence(t.UnitRate), ev, decimalString(t.StandingCharge),
			tariff.FormatCurrency(t.AnnualCost))
	}
	return tw.Flush()
}

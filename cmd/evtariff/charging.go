package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bher20/evtariff/internal/tariff"
)

func chargingCmd() *cobra.Command {
	var id, output string

	cmd := &cobra.Command{
		Use:   "charging",
		Short: "Estimate EV charging cost and time for a tariff",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			est, err := a.svc.Estimates(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeEstimates(os.Stdout, output, est)
		},
	}

	cmd.Flags().StringVarP(&id, "tariff", "t", "", "tariff id (default: the selected tariff)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

func writeEstimates(w io.Writer, format string, est tariff.ChargingEstimates) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(est)
	case "yaml":
		return yaml.NewEncoder(w).Encode(est)
	case "table", "":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	fmt.Fprintf(w, "%s (%s kWh battery)\n", est.Vehicle.Model, decimalString(est.Vehicle.BatteryKWh))
	fmt.Fprintf(w, "Tariff: %s, %s %s\n", est.TariffName, est.RateLabel, tariff.FormatPence(est.Rate))
	if est.OffPeak != nil {
		fmt.Fprintf(w, "Off-peak: %s, %s%% of EV charging\n", est.OffPeak.Label, decimalString(est.EVOffPeakPercentage))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"SCENARIO", "KWH", "COST"}
	if len(est.Scenarios) > 0 {
		for _, d := range est.Scenarios[0].Durations {
			header = append(header, strings.ToUpper(decimalString(d.Charger.KW)+"KW"))
		}
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, s := range est.Scenarios {
		row := []string{s.Scenario.Name, decimalString(s.KWh), tariff.FormatCurrency(s.Cost)}
		for _, d := range s.Durations {
			row = append(row, d.Display)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func decimalString(v float64) string {
	return decimal.NewFromFloat(v).String()
}

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/bher20/evtariff/internal/cron"
	"github.com/bher20/evtariff/internal/notification"
)

func workerCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the scheduled comparison report",
		Long: `worker ranks the tariffs on a schedule, publishes the annual costs as
metrics and notifies the configured channels when the cheapest tariff
changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := notification.FromConfig(a.cfg.Notify, a.log)
			if err != nil {
				return err
			}
			r := cron.NewReporter(a.svc, a.store, n, a.log)
			if once {
				return r.RunOnce(ctx)
			}
			if err := r.Run(ctx, a.cfg.Report.Schedule); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run a single report and exit")
	return cmd
}

package commands

import (
	"fmt"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/dates"
	"github.com/spf13/cobra"
)

func datesCmd() *cobra.Command {
	var (
		at     string
		cutoff string
		booked []string
		focus  string
	)

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Print the order dates offered at a given moment",
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := cfg.Calculator()
			if err != nil {
				return err
			}
			if cutoff != "" {
				if calc.Cutoff, err = dates.ParseCutoff(cutoff); err != nil {
					return err
				}
			}

			now := time.Now().In(calc.Location)
			if at != "" {
				if now, err = time.ParseInLocation("2006-01-02T15:04", at, calc.Location); err != nil {
					return fmt.Errorf("--at must look like 2026-10-14T10:00: %w", err)
				}
			}

			bookings := make([]dates.Booking, len(booked))
			var focused *dates.Booking
			for i, d := range booked {
				bookings[i] = dates.Booking{ID: fmt.Sprintf("booked-%d", i), Date: d}
				if d == focus {
					focused = &bookings[i]
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cutoff %s, window %d days, from %s\n", calc.Cutoff, calc.Window, calc.FirstDay(now).Format(dates.ISOLayout))
			for _, opt := range calc.OptionValues(now, bookings, focused) {
				fmt.Fprintf(out, "%s  %s\n", opt.Date, opt.Label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "moment to evaluate, YYYY-MM-DDTHH:MM in TIMEZONE (default now)")
	cmd.Flags().StringVar(&cutoff, "cutoff", "", "override CUTOFF_TIME (HH:MM)")
	cmd.Flags().StringSliceVar(&booked, "booked", nil, "dates already holding an order (YYYY-MM-DD)")
	cmd.Flags().StringVar(&focus, "focus", "", "booked date belonging to the order being edited")
	return cmd
}

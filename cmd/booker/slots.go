package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

func newSlotsCommand(opts *rootOptions) *cobra.Command {
	var (
		doctorID string
		days     int
		server   bool
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the bookable slots of a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()
			ctx := cmd.Context()

			var groups []availability.DateGroup
			var err error

			if server {
				// server-side view, without slots that are already taken
				groups, err = client.Slots(ctx, doctorID, days)
			} else {
				flow := booking.NewFlow(doctorID, nil)
				if days > 0 {
					flow.HorizonDays = days
				}
				groups, err = flow.Refresh(ctx, client, opts.now())
			}
			if err != nil {
				return err
			}

			printGroups(cmd.OutOrStdout(), groups)
			return nil
		},
	}

	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor id")
	cmd.Flags().IntVar(&days, "days", availability.DefaultHorizonDays, "number of days after today")
	cmd.Flags().BoolVar(&server, "server", false, "ask the server, hiding booked slots")
	_ = cmd.MarkFlagRequired("doctor")

	return cmd
}

func printGroups(w io.Writer, groups []availability.DateGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No available times.")
		return
	}
	for _, g := range groups {
		times := make([]string, 0, len(g.Slots))
		for _, s := range g.Slots {
			times = append(times, s.Time)
		}
		fmt.Fprintf(w, "%s %s %02d %s: %s\n", g.Date, g.DayLabel, g.DayNumber, g.Month, strings.Join(times, " "))
	}
}

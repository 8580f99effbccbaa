package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

func newBookCommand(opts *rootOptions) *cobra.Command {
	var (
		doctorID string
		date     string
		hhmm     string
		creds    credentials
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a slot for the signed-in patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := opts.logger()
			client := opts.client()

			identity, err := creds.login(ctx, client)
			if err != nil {
				return err
			}

			flow := booking.NewFlow(doctorID, booking.NewSubmitter(client, logger, nil))
			if _, err := flow.Refresh(ctx, client, opts.now()); err != nil {
				return err
			}
			if err := flow.PickDate(date); err != nil {
				return err
			}
			if err := flow.PickTime(hhmm); err != nil {
				return err
			}

			ap, err := flow.Confirm(ctx, identity)
			if err != nil {
				if msg := booking.UserMessage(err); msg != "" {
					return errors.New(msg)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s at %s (appointment %s, %s)\n", date, hhmm, ap.ID, ap.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor id")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&hhmm, "time", "", "time as HH:MM")
	creds.bind(cmd)
	for _, name := range []string{"doctor", "date", "time"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

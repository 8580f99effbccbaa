package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/clinic-scheduler/internal/apiclient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
)

// credentials are the patient's sign-in flags.
type credentials struct {
	email    string
	password string
}

func (c *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.email, "email", envOr("BOOKER_EMAIL", ""), "patient e-mail")
	cmd.Flags().StringVar(&c.password, "password", envOr("BOOKER_PASSWORD", ""), "patient password")
}

func (c *credentials) login(ctx context.Context, client *apiclient.Client) (*auth.Identity, error) {
	if c.email == "" || c.password == "" {
		return nil, fmt.Errorf("--email and --password (or BOOKER_EMAIL/BOOKER_PASSWORD) are required")
	}
	return client.Login(ctx, c.email, c.password)
}

func newAppointmentsCommand(opts *rootOptions) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List the signed-in patient's appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()
			identity, err := creds.login(cmd.Context(), client)
			if err != nil {
				return err
			}

			aps, err := client.MyAppointments(cmd.Context(), identity.Token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(aps) == 0 {
				fmt.Fprintln(out, "No appointments.")
				return nil
			}
			for _, ap := range aps {
				fmt.Fprintf(out, "%s  %s  doctor=%s  %s\n", ap.ID, ap.StartsAt, ap.DoctorID, ap.Status)
			}
			return nil
		},
	}
	creds.bind(cmd)

	cancel := &cobra.Command{
		Use:   "cancel <appointment-id>",
		Short: "Cancel one of the signed-in patient's appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()
			identity, err := creds.login(cmd.Context(), client)
			if err != nil {
				return err
			}

			ap, err := client.CancelAppointment(cmd.Context(), identity.Token, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Appointment %s is now %s\n", ap.ID, ap.Status)
			return nil
		},
	}
	creds.bind(cancel)
	cmd.AddCommand(cancel)

	return cmd
}

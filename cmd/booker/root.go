package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/apiclient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	apiURL   string
	timezone string
	logLevel string
}

func (o *rootOptions) logger() *zap.Logger {
	l, err := logging.New(o.logLevel, "development")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (o *rootOptions) client() *apiclient.Client {
	return apiclient.New(o.apiURL, o.logger())
}

// now is the reference instant in the clinic timezone.
func (o *rootOptions) now() time.Time {
	return timezone.NowIn(o.timezone)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "booker",
		Short:         "Book clinic appointments from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("CLINIC_API_URL", "http://localhost:8080"), "clinic API base URL")
	cmd.PersistentFlags().StringVar(&opts.timezone, "tz", envOr("CLINIC_TIMEZONE", "America/Sao_Paulo"), "clinic timezone used for dates")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(newSlotsCommand(opts))
	cmd.AddCommand(newBookCommand(opts))
	cmd.AddCommand(newAppointmentsCommand(opts))

	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

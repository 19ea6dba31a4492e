package cli

import (
	"context"
	"time"

	"salon-booking/cmd/bootstrap"

	"github.com/spf13/cobra"
)

func NewRemindCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send reminders for upcoming appointments once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			sent, err := app.RunReminders(ctx)
			if err != nil {
				return err
			}

			app.Log.Infof("Reminders sent: %d", sent)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "maximum time for the reminder run")

	return cmd
}

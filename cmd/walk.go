package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/secaware/internal/console"
)

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Take the course as a plain line-by-line session",
	Long:  "Runs the course without the full-screen UI, reading answers from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		r := console.New(s.catalog, s.store, cmd.InOrStdin(), cmd.OutOrStdout(), s.logger)
		return r.Run(ctx)
	},
}

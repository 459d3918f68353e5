package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/carson-networks/bank-console/api"
)

func NewServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web console",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if port != "" {
				a.config.Port = port
			}

			a.logger.WithField("serviceURL", a.client.BaseURL()).Info("bank-console starting")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			httpRest := api.Rest{
				Logger:   a.logger,
				Port:     a.config.Port,
				Client:   a.client,
				Renderer: a.renderer,
			}
			return httpRest.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides CONSOLE_PORT)")
	return cmd
}

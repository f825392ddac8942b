package commands

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"zetra/internal/httpapi"
)

func healthCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that a zetra-server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = "http://" + wire.Config.Server.Listen
			}
			c := httpapi.NewClient(server, &http.Client{Timeout: 5 * time.Second})
			h, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s\n", server, h.Status, time.UnixMilli(h.Timestamp).Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "server base URL (default http://<server.listen>)")
	return cmd
}

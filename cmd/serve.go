package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Serve a grimoire directory over plain HTTP",
	Long: `Serve exposes a local grimoire directory as a static file server that the
browse and show commands can read from, for sharing a grimoire on a LAN or
for testing HTTP targets locally.

Examples:
  grimoire serve ./my-grimoire
  grimoire serve --port 9000 --allow-all ./my-grimoire`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		// Check if path exists
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("grimoire directory not found: %s", dir)
		}

		port, _ := cmd.Flags().GetInt("port")
		allowAll, _ := cmd.Flags().GetBool("allow-all")

		srv := server.New(server.Config{Port: port, AllowAll: allowAll}, dir, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			if err := srv.Shutdown(context.Background()); err != nil {
				logger.Warn("error during shutdown", zap.Error(err))
			}
		}()

		fmt.Printf("Serving %s on http://localhost:%d\n", dir, port)
		return srv.Start()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8383, "Port to listen on")
	serveCmd.Flags().Bool("allow-all", false, "Allow cross-origin requests from any origin")
}

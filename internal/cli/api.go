package cli

import (
	"github.com/spf13/cobra"

	"github.com/stickpad/stickpad/internal/api"
	"github.com/stickpad/stickpad/internal/config"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve JSON requests on stdin",
	Long: `Serve JSON requests on stdin, one per line, writing one JSON response
per line to stdout. This is the machine interface other front-ends drive.

Example:
  echo '{"op":"list-notes"}' | stickpad api`,
	RunE: runAPI,
}

func runAPI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	d := api.NewDispatcher(notes, cfg)
	return api.Serve(ctx, d, cmd.InOrStdin(), cmd.OutOrStdout())
}

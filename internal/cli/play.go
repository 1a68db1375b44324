package cli

import (
	"os"

	"drb-quiz-service/internal/app"
	"drb-quiz-service/internal/config"
	"drb-quiz-service/internal/transport/terminal"
	"github.com/spf13/cobra"
)

// NewPlayCmd plays one quiz session on stdin/stdout.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		bankID   string
		copyFile string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if bankID == "" {
				bankID = cfg.Quiz.Bank
			}
			service, _, cleanup, err := buildService(cmd.Context(), cfg)
			defer cleanup()
			if err != nil {
				return err
			}

			var clipboard app.Clipboard
			if copyFile != "" {
				clipboard = terminal.FileClipboard{Path: copyFile}
			}
			player := terminal.NewPlayer(service, bankID, cfg.Share.Site, os.Stdin, cmd.OutOrStdout(), clipboard)
			return player.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "question bank to play (defaults to config)")
	cmd.Flags().StringVar(&copyFile, "copy-file", "", "write shared results to this file instead of the screen")
	return cmd
}

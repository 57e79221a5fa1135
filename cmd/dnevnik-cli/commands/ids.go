package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(idsCmd)
}

var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Logs in and prints the school, group and profile ids of the user.",
	Run: func(cmd *cobra.Command, args []string) {
		client := login(cmd.Context(), loadConfig())
		renderSession(client.Session())
	},
}

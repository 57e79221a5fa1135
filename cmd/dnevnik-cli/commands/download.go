package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download <dir>",
	Short: "Saves every page kind the parsers understand, for use as test fixtures.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		period := resolvePeriod(cfg)
		scraper := newScraper(cmd.Context(), cfg)

		dir := args[0]
		err := os.MkdirAll(dir, 0777)
		if err != nil {
			fatal("failed to create output directory", err)
		}

		pages, err := scraper.RawPages(cmd.Context(), period)
		if err != nil {
			fatal("failed to download pages", err)
		}
		for _, page := range pages {
			path := filepath.Join(dir, page.Name+".html")
			err := os.WriteFile(path, []byte(page.Contents), 0666)
			if err != nil {
				fatal("failed to save page", err)
			}
			slog.Info("saved page", "path", path)
		}
	},
}

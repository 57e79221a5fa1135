package commands

import (
	"dnevnik-client/internal/components/chrono"
	"dnevnik-client/internal/components/store"
	"time"

	"github.com/spf13/cobra"
)

var diaryPeriod string

func init() {
	diaryCmd.Flags().StringVar(&diaryPeriod, "period", "", "A day of the week to print (dd.mm.yyyy), defaults to the config date or today.")
	rootCmd.AddCommand(diaryCmd)
}

// resolvePeriod picks the flag, then the configured date, then today.
func resolvePeriod(cfg Config) time.Time {
	period := diaryPeriod
	if period == "" {
		period = cfg.Date
	}
	if period == "" {
		return chrono.NewStandardTime().Now()
	}
	parsed, err := chrono.ParsePeriod(period)
	if err != nil {
		fatal("invalid period", err)
	}
	return parsed
}

var diaryCmd = &cobra.Command{
	Use:   "diary [--period dd.mm.yyyy]",
	Short: "Prints the weekly diary report.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		period := resolvePeriod(cfg)

		scraper := newScraper(cmd.Context(), cfg)
		report, err := scraper.Diary(cmd.Context(), period)
		if err != nil {
			fatal("failed to fetch diary", err)
		}

		out, run, save := openRun(cmd.Context(), store.RunDiary)
		if save {
			defer out.Close()
			err = out.SaveDiary(cmd.Context(), run.ID, chrono.FormatPeriod(period), report)
			if err != nil {
				fatal("failed to save diary", err)
			}
		}
		renderDiary(report)
	},
}

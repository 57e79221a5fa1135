package commands

import (
	"dnevnik-client/internal/components/store"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(calendarCmd)
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Prints the number of birthdays for every day of the year.",
	Run: func(cmd *cobra.Command, args []string) {
		scraper := newScraper(cmd.Context(), loadConfig())
		calendar, err := scraper.CalendarBirthdays(cmd.Context())
		if err != nil {
			fatal("failed to fetch calendar", err)
		}

		out, run, save := openRun(cmd.Context(), store.RunCalendar)
		if save {
			defer out.Close()
			err = out.SaveCalendar(cmd.Context(), run.ID, calendar)
			if err != nil {
				fatal("failed to save calendar", err)
			}
		}
		renderCalendar(calendar)
	},
}

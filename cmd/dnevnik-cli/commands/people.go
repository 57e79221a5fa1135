package commands

import (
	"dnevnik-client/internal/components/store"
	"dnevnik-client/internal/scrapers/dnevnik"
	"iter"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	searchOpts     dnevnik.SearchOptions
	peoplePages    int
	birthdayGroup  string
	birthdaysPages int
)

func init() {
	searchCmd.Flags().StringVar(&searchOpts.Name, "name", "", "First, last or middle name to search for.")
	searchCmd.Flags().StringVar(&searchOpts.Group, "group", "all", "One of all, students, staff, administrators, teachers, management, director.")
	searchCmd.Flags().StringVar(&searchOpts.Class, "class", "", "A class name (ex. 9А).")
	searchCmd.Flags().IntVar(&searchOpts.MaxPages, "max-pages", dnevnik.DefaultPeoplePages, "The maximum number of pages to fetch.")

	peopleCmd.Flags().IntVar(&peoplePages, "max-pages", dnevnik.DefaultPeoplePages, "The maximum number of pages to fetch.")

	birthdaysCmd.Flags().StringVar(&birthdayGroup, "group", "all", "One of all, students, staff, class.")
	birthdaysCmd.Flags().IntVar(&birthdaysPages, "max-pages", dnevnik.DefaultBirthdayPages, "The maximum number of pages to fetch.")

	rootCmd.AddCommand(classCmd, searchCmd, peopleCmd, birthdaysCmd)
}

// collectUsers drains pages, saving each one to the --db store when given.
func collectUsers(cmd *cobra.Command, kind string, pages iter.Seq2[dnevnik.UserPage, error]) {
	out, run, save := openRun(cmd.Context(), kind)
	if save {
		defer out.Close()
	}

	users := []dnevnik.UserRecord{}
	total := 0
	number := 0
	for page, err := range pages {
		if err != nil {
			fatal("failed to fetch people", err)
		}
		number++
		total = page.Count
		users = append(users, page.Items...)
		slog.Debug("fetched page", "page", number, "users", len(page.Items))

		if save {
			err := out.SaveUserPage(cmd.Context(), run.ID, number, page)
			if err != nil {
				fatal("failed to save page", err)
			}
		}
	}
	renderUsers(users, total)
}

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Prints the classmates of the user.",
	Run: func(cmd *cobra.Command, args []string) {
		scraper := newScraper(cmd.Context(), loadConfig())
		users, err := scraper.ClassUsers(cmd.Context())
		if err != nil {
			fatal("failed to fetch class", err)
		}
		collectUsers(cmd, store.RunClass, func(yield func(dnevnik.UserPage, error) bool) {
			if !users.Empty() {
				yield(users, nil)
			}
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [--name <name>] [--group <group>] [--class <class>]",
	Short: "Searches the people of the user's school.",
	Run: func(cmd *cobra.Command, args []string) {
		scraper := newScraper(cmd.Context(), loadConfig())
		collectUsers(cmd, store.RunSearch, scraper.SearchPeople(cmd.Context(), searchOpts))
	},
}

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Prints every member of the user's school.",
	Run: func(cmd *cobra.Command, args []string) {
		scraper := newScraper(cmd.Context(), loadConfig())
		collectUsers(cmd, store.RunPeople, scraper.AllPeople(cmd.Context(), peoplePages))
	},
}

var birthdaysCmd = &cobra.Command{
	Use:   "birthdays [--group <group>]",
	Short: "Prints the people with a birthday in the coming days.",
	Run: func(cmd *cobra.Command, args []string) {
		scraper := newScraper(cmd.Context(), loadConfig())
		collectUsers(cmd, store.RunBirthdays, scraper.BirthdaysNear(cmd.Context(), birthdayGroup, birthdaysPages))
	},
}

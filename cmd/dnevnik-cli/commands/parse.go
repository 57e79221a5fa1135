package commands

import (
	"dnevnik-client/internal/scrapers/dnevnik"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:       "parse <users|calendar|diary|ids> <file.html>",
	Short:     "Parses a saved page without touching the network.",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"users", "calendar", "diary", "ids"},
	RunE: func(cmd *cobra.Command, args []string) error {
		contents, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		page := string(contents)

		switch args[0] {
		case "users":
			users, err := dnevnik.ParseUserPage(page)
			if err != nil {
				return err
			}
			renderUsers(users.Items, users.Count)
		case "calendar":
			calendar, err := dnevnik.ParseCalendar(page)
			if err != nil {
				return err
			}
			renderCalendar(calendar)
		case "diary":
			report, err := dnevnik.ParseDiary(page)
			if err != nil {
				return err
			}
			renderDiary(report)
		case "ids":
			groupId, err := dnevnik.ExtractGroupID(page)
			if err != nil {
				return err
			}
			profileId, err := dnevnik.ExtractProfileID(page)
			if err != nil {
				return err
			}
			renderSession(dnevnik.Session{GroupID: groupId, ProfileID: profileId})
		default:
			return fmt.Errorf("unknown page kind %q, expected one of users, calendar, diary, ids", args[0])
		}
		return nil
	},
}

package commands

import (
	"dnevnik-client/internal/scrapers/dnevnik"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderUsers(users []dnevnik.UserRecord, total int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Name", "Profile"})
	for i, u := range users {
		t.AppendRow(table.Row{i + 1, u.DisplayName, u.ProfileURL})
	}
	t.AppendFooter(table.Row{"", "Total", total})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderCalendar(calendar dnevnik.YearCalendar) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Month", "Day", "Birthdays"})
	for _, month := range calendar.Months() {
		for _, day := range calendar.Month(month) {
			if day.Count == 0 {
				continue
			}
			t.AppendRow(table.Row{month, day.Day, day.Count})
		}
		t.AppendSeparator()
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderSession(session dnevnik.Session) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Id", "Value"})
	t.AppendRows([]table.Row{
		{"school", session.SchoolID},
		{"group", session.GroupID},
		{"profile", session.ProfileID},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderDiary(report dnevnik.DiaryReport) {
	fmt.Println(report.String())
}

package dnevnik

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestParseCalendar(t *testing.T) {
	calendar, err := ParseCalendar(readFixture(t, "calendar.html"))
	require.NoError(t, err)

	expected := YearCalendar{Days: []CalendarDay{
		{Count: 2, Day: 1, Month: "Январь", URL: "/birthdays.aspx?school=1&day=1&month=1"},
		{Count: 0, Day: 2, Month: "Январь", URL: "/birthdays.aspx?school=1&day=2&month=1"},
		{Count: 11, Day: 1, Month: "Февраль", URL: "/birthdays.aspx?school=1&day=1&month=2"},
	}}
	if diff := cmp.Diff(expected, calendar); diff != "" {
		t.Fatal(diff)
	}

	require.Equal(t, []string{"Январь", "Февраль"}, calendar.Months())
	require.Len(t, calendar.Month("Январь"), 2)
	require.Empty(t, calendar.Month("Март"))

	month, ok := calendar.Days[2].MonthOrdinal()
	require.True(t, ok)
	require.Equal(t, 2, month)
}

func TestParseCalendarWithoutTables(t *testing.T) {
	calendar, err := ParseCalendar(`<html><body><p>nothing here</p></body></html>`)
	require.NoError(t, err)
	if diff := cmp.Diff(YearCalendar{}, calendar, cmpopts.EquateEmpty()); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseCalendarMalformed(t *testing.T) {
	table := []struct {
		name string
		page string
	}{
		{
			name: "missing caption",
			page: `<table class="calendar"><tr><td><a href="/x" title="a: 1">1</a></td></tr></table>`,
		},
		{
			name: "day is not a number",
			page: `<table class="calendar"><caption>Май</caption><tr><td><a href="/x" title="a: 1">x</a></td></tr></table>`,
		},
		{
			name: "missing title",
			page: `<table class="calendar"><caption>Май</caption><tr><td><a href="/x">1</a></td></tr></table>`,
		},
		{
			name: "title without count",
			page: `<table class="calendar"><caption>Май</caption><tr><td><a href="/x" title="a lot">1</a></td></tr></table>`,
		},
		{
			name: "missing href",
			page: `<table class="calendar"><caption>Май</caption><tr><td><a title="a: 1">1</a></td></tr></table>`,
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			_, err := ParseCalendar(row.page)
			require.ErrorIs(t, err, ErrMalformedPage)
		})
	}
}

func TestMonthOrdinal(t *testing.T) {
	table := []struct {
		month    string
		expected int
		ok       bool
	}{
		{month: "Январь", expected: 1, ok: true},
		{month: " декабрь ", expected: 12, ok: true},
		{month: "МАЙ", expected: 5, ok: true},
		{month: "Smarch", ok: false},
	}

	for _, row := range table {
		month, ok := CalendarDay{Month: row.month}.MonthOrdinal()
		require.Equal(t, row.ok, ok, row.month)
		require.Equal(t, row.expected, month, row.month)
	}
}

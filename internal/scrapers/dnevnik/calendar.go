package dnevnik

import (
	"dnevnik-client/pkg/htmlutil"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CalendarParser extracts the birthday calendar, one table per month.
type CalendarParser struct {
	selectors CalendarSelectorTable
}

func NewCalendarParser(selectors CalendarSelectorTable) CalendarParser {
	return CalendarParser{selectors: selectors}
}

// ParseCalendar parses a birthday calendar page with the default selectors.
func ParseCalendar(page string) (YearCalendar, error) {
	return NewCalendarParser(CalendarSelectors).Parse(page)
}

func (p CalendarParser) Parse(page string) (YearCalendar, error) {
	doc, err := newDocument(page)
	if err != nil {
		return YearCalendar{}, err
	}
	return p.ParseDocument(doc)
}

// ParseDocument returns an empty calendar (not an error) when the page has no
// month tables.
func (p CalendarParser) ParseDocument(doc *goquery.Document) (YearCalendar, error) {
	days := []CalendarDay{}
	for _, table := range htmlutil.All(doc.Selection, p.selectors.Table) {
		caption, ok := htmlutil.First(table, p.selectors.Caption)
		if !ok {
			return YearCalendar{}, malformed(PageCalendar, "month", "%s not found", p.selectors.Caption)
		}
		month := htmlutil.Text(caption)

		for _, cell := range htmlutil.All(table, p.selectors.Day) {
			day, err := p.parseDay(cell, month)
			if err != nil {
				return YearCalendar{}, err
			}
			days = append(days, day)
		}
	}
	return YearCalendar{Days: days}, nil
}

func (p CalendarParser) parseDay(cell *goquery.Selection, month string) (CalendarDay, error) {
	dayText := htmlutil.Text(cell)
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return CalendarDay{}, malformed(PageCalendar, "day", "%s: day number %q: %s", month, dayText, err)
	}

	title, ok := cell.Attr("title")
	if !ok {
		return CalendarDay{}, malformed(PageCalendar, "day", "%s %d: no title attribute", month, day)
	}
	count, ok := p.parseCount(title)
	if !ok {
		return CalendarDay{}, malformed(PageCalendar, "day", "%s %d: no celebrant count in title %q", month, day, title)
	}

	href, ok := cell.Attr("href")
	if !ok {
		return CalendarDay{}, malformed(PageCalendar, "day", "%s %d: no href attribute", month, day)
	}

	return CalendarDay{
		Count: count,
		Day:   day,
		Month: month,
		URL:   strings.TrimSpace(href),
	}, nil
}

// parseCount reads "<text>: <n>" tooltips, the no-birthdays phrase counts as 0.
func (p CalendarParser) parseCount(title string) (int, bool) {
	if strings.Contains(title, p.selectors.NoBirthdays) {
		return 0, true
	}
	_, after, found := strings.Cut(title, ": ")
	if !found {
		return 0, false
	}
	after, _, _ = strings.Cut(after, ": ")
	count, err := strconv.Atoi(strings.TrimSpace(after))
	if err != nil {
		return 0, false
	}
	return count, true
}

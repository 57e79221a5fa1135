package dnevnik

import "dnevnik-client/pkg/htmlutil"

type selector = htmlutil.Selector

// DiarySelectorTable locates the sections of the weekly diary page
// (https://dnevnik.ru/currentprogress/result/...).
type DiarySelectorTable struct {
	Header htmlutil.Selector

	Row                htmlutil.Selector
	Label              htmlutil.Selector
	Paragraph          htmlutil.Selector
	SecondaryParagraph htmlutil.Selector

	Themes     htmlutil.Selector
	Attendance htmlutil.Selector
	Progress   htmlutil.Selector

	Schedule    htmlutil.Selector
	ScheduleRow htmlutil.Selector
	DayTitle    htmlutil.Selector
	Lesson      htmlutil.Selector

	Homework htmlutil.Selector

	// EmptyMarker is rendered by the portal in place of a section with no data.
	EmptyMarker htmlutil.Selector
}

var DiarySelectors = DiarySelectorTable{
	Header: selector{Tag: "h5", Class: "h5 h5_bold"},

	Row:                selector{Tag: "li", Class: "current-progress-list__item"},
	Label:              selector{Tag: "b"},
	Paragraph:          selector{Tag: "p"},
	SecondaryParagraph: selector{Tag: "p", Class: "paragraph paragraph_no-margin paragraph_inline"},

	Themes:     selector{Tag: "div", Class: "current-progress-themes"},
	Attendance: selector{Tag: "div", Class: "current-progress-attendance"},
	Progress:   selector{Tag: "div", Class: "current-progress-marks"},

	Schedule:    selector{Tag: "div", Class: "current-progress-schedule"},
	ScheduleRow: selector{Tag: "li", Class: "current-progress-schedule__item"},
	DayTitle:    selector{Tag: "div", Class: "current-progress-schedule__day-title"},
	Lesson:      selector{Tag: "li", Class: "current-progress-lessons__item"},

	Homework: selector{Tag: "div", Class: "current-progress-homeworks"},

	EmptyMarker: selector{Tag: "div", Class: "progress__empty-block"},
}

// UserListSelectorTable locates the people grid shared by the class roster,
// school search and upcoming birthdays pages.
type UserListSelectorTable struct {
	Count htmlutil.Selector
	Table htmlutil.Selector
	Row   htmlutil.Selector
	User  htmlutil.Selector
}

var UserListSelectors = UserListSelectorTable{
	Count: selector{Tag: "p", Class: "found"},
	Table: selector{Tag: "table", Class: "people grid"},
	Row:   selector{Tag: "td", Class: "tdName"},
	User:  selector{Class: "u"},
}

// CalendarSelectorTable locates the month grids of the birthday calendar
// (birthdays.aspx?view=calendar).
type CalendarSelectorTable struct {
	Table   htmlutil.Selector
	Caption htmlutil.Selector
	Day     htmlutil.Selector

	// NoBirthdays is the tooltip text of a day without celebrants.
	NoBirthdays string
}

var CalendarSelectors = CalendarSelectorTable{
	Table:   selector{Tag: "table", Class: "calendar"},
	Caption: selector{Tag: "caption"},
	Day:     selector{Tag: "a"},

	NoBirthdays: "В этот день нет дней рождения",
}

package dnevnik

import "strings"

// UserRecord is one person in a roster or search result. ProfileURL is empty
// for people who never registered on the portal.
type UserRecord struct {
	DisplayName string
	ProfileURL  string
}

// UserPage is one page of a paginated people listing.
//
// Count is the total number of matches reported by the portal across all pages,
// not len(Items). A Count of 0 means there are no (more) results.
type UserPage struct {
	Count int
	Items []UserRecord
}

// Empty reports whether the page is the portal's "nothing found" page.
func (p UserPage) Empty() bool {
	return p.Count == 0
}

// CalendarDay is one cell of the birthday calendar.
type CalendarDay struct {
	Count int
	Day   int
	Month string
	URL   string
}

var monthOrdinals = map[string]int{
	"январь":   1,
	"февраль":  2,
	"март":     3,
	"апрель":   4,
	"май":      5,
	"июнь":     6,
	"июль":     7,
	"август":   8,
	"сентябрь": 9,
	"октябрь":  10,
	"ноябрь":   11,
	"декабрь":  12,
}

// MonthOrdinal maps the month label to 1-12, ok is false for unknown labels.
func (d CalendarDay) MonthOrdinal() (month int, ok bool) {
	month, ok = monthOrdinals[strings.ToLower(strings.TrimSpace(d.Month))]
	return month, ok
}

// YearCalendar holds every calendar day grouped by month in page order.
type YearCalendar struct {
	Days []CalendarDay
}

// Month returns the days of a single month label.
func (c YearCalendar) Month(label string) []CalendarDay {
	days := []CalendarDay{}
	for _, d := range c.Days {
		if d.Month == label {
			days = append(days, d)
		}
	}
	return days
}

// Months returns the distinct month labels in page order.
func (c YearCalendar) Months() []string {
	months := []string{}
	for _, d := range c.Days {
		if len(months) == 0 || months[len(months)-1] != d.Month {
			months = append(months, d.Month)
		}
	}
	return months
}

// DiaryInfo is the header of a diary page.
type DiaryInfo struct {
	StudentName  string
	SchoolName   string
	ClassName    string
	AcademicYear string
	ReportDate   string
}

type Theme struct {
	SubjectName string
	ThemeText   string
}

// AttendanceEntry is one attendance row. The placeholder entry (empty label,
// no values) stands in for a week without attendance rows.
type AttendanceEntry struct {
	Label  string
	Values []string
}

func (a AttendanceEntry) IsPlaceholder() bool {
	return a.Label == "" && len(a.Values) == 0
}

type ProgressEntry struct {
	Grade       string
	WorkType    string
	SubjectName string
}

// ScheduleDay is one day of the weekly schedule. The placeholder day (empty
// label, no lessons) stands in for a week without a schedule.
type ScheduleDay struct {
	DayLabel string
	Lessons  []string
}

func (s ScheduleDay) IsPlaceholder() bool {
	return s.DayLabel == "" && len(s.Lessons) == 0
}

// HomeworkEntry is one homework row. The zero value is the placeholder for a
// week without homework.
type HomeworkEntry struct {
	SubjectName  string
	HomeworkText string
}

func (h HomeworkEntry) IsPlaceholder() bool {
	return h == HomeworkEntry{}
}

// DiaryReport is the weekly academic summary of one student.
type DiaryReport struct {
	Info        DiaryInfo
	Themes      []Theme
	Attendances []AttendanceEntry
	Progress    []ProgressEntry
	Schedules   []ScheduleDay
	Homeworks   []HomeworkEntry
}

func placeholderAttendance() []AttendanceEntry {
	return []AttendanceEntry{{Label: "", Values: []string{}}}
}

func placeholderSchedule() []ScheduleDay {
	return []ScheduleDay{{DayLabel: "", Lessons: []string{}}}
}

func placeholderHomework() []HomeworkEntry {
	return []HomeworkEntry{{}}
}

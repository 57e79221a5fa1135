package dnevnik

import (
	"fmt"
	"strings"
)

func (i DiaryInfo) String() string {
	return strings.Join([]string{
		i.StudentName,
		i.SchoolName,
		i.ClassName,
		i.AcademicYear,
		i.ReportDate,
	}, " ")
}

func (t Theme) String() string {
	return fmt.Sprintf("%s - %s", t.SubjectName, t.ThemeText)
}

func (a AttendanceEntry) String() string {
	return strings.TrimSpace(a.Label + " " + strings.Join(a.Values, " "))
}

func (p ProgressEntry) String() string {
	return fmt.Sprintf("%s - %s %s", p.SubjectName, p.WorkType, p.Grade)
}

func (s ScheduleDay) String() string {
	if len(s.Lessons) == 0 {
		return s.DayLabel
	}
	return s.DayLabel + "\n" + strings.Join(s.Lessons, "\n")
}

func (h HomeworkEntry) String() string {
	return strings.TrimSpace(h.SubjectName + " " + h.HomeworkText)
}

func (u UserRecord) String() string {
	if u.ProfileURL == "" {
		return u.DisplayName
	}
	return fmt.Sprintf("%s <%s>", u.DisplayName, u.ProfileURL)
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%d %s: %d", d.Day, d.Month, d.Count)
}

var separator = strings.Repeat("_", 30)

func writeSection[T fmt.Stringer](out *strings.Builder, title string, items []T) {
	fmt.Fprintf(out, "\n%s\n%s:\n%s\n", separator, title, separator)
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.String()
	}
	out.WriteString(strings.Join(lines, "\n"))
}

// String renders the report for humans, one labeled section per entry kind.
func (r DiaryReport) String() string {
	var out strings.Builder
	out.WriteString(r.Info.String())
	writeSection(&out, "Themes", r.Themes)
	writeSection(&out, "Attendance", r.Attendances)
	writeSection(&out, "Progress", r.Progress)
	writeSection(&out, "Schedules", r.Schedules)
	writeSection(&out, "Homeworks", r.Homeworks)
	return out.String()
}

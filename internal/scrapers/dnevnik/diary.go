package dnevnik

import (
	"dnevnik-client/pkg/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const diaryHeaderFields = 5

// DiaryParser extracts a DiaryReport from the weekly diary page.
//
// Empty sections are handled per section:
//   - the header must always be present.
//   - themes and progress may only be missing when the page shows the portal's
//     empty marker, a present container with no rows yields no entries.
//   - attendance, schedule and homework yield a single placeholder entry when the
//     container is missing or has no rows.
//
// Any other missing element fails the whole parse.
type DiaryParser struct {
	selectors DiarySelectorTable
}

func NewDiaryParser(selectors DiarySelectorTable) DiaryParser {
	return DiaryParser{selectors: selectors}
}

// ParseDiary parses a diary page with the default selectors.
func ParseDiary(page string) (DiaryReport, error) {
	return NewDiaryParser(DiarySelectors).Parse(page)
}

func (p DiaryParser) Parse(page string) (DiaryReport, error) {
	doc, err := newDocument(page)
	if err != nil {
		return DiaryReport{}, err
	}
	return p.ParseDocument(doc)
}

func (p DiaryParser) ParseDocument(doc *goquery.Document) (DiaryReport, error) {
	root := doc.Selection

	info, err := p.info(root)
	if err != nil {
		return DiaryReport{}, err
	}
	themes, err := p.themes(root)
	if err != nil {
		return DiaryReport{}, err
	}
	attendances, err := p.attendances(root)
	if err != nil {
		return DiaryReport{}, err
	}
	progress, err := p.progress(root)
	if err != nil {
		return DiaryReport{}, err
	}
	schedules, err := p.schedules(root)
	if err != nil {
		return DiaryReport{}, err
	}
	homeworks, err := p.homeworks(root)
	if err != nil {
		return DiaryReport{}, err
	}

	return DiaryReport{
		Info:        info,
		Themes:      themes,
		Attendances: attendances,
		Progress:    progress,
		Schedules:   schedules,
		Homeworks:   homeworks,
	}, nil
}

// SplitDiaryHeader splits "name, school, class, year, date" into DiaryInfo.
func SplitDiaryHeader(header string) (DiaryInfo, error) {
	parts := strings.Split(header, ",")
	if len(parts) != diaryHeaderFields {
		return DiaryInfo{}, malformed(
			PageDiary, "header",
			"expected %d comma separated fields, got %d in %q",
			diaryHeaderFields, len(parts), header,
		)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return DiaryInfo{
		StudentName:  parts[0],
		SchoolName:   parts[1],
		ClassName:    parts[2],
		AcademicYear: parts[3],
		ReportDate:   parts[4],
	}, nil
}

func (p DiaryParser) info(root *goquery.Selection) (DiaryInfo, error) {
	header, ok := htmlutil.First(root, p.selectors.Header)
	if !ok {
		return DiaryInfo{}, malformed(PageDiary, "header", "%s not found", p.selectors.Header)
	}
	return SplitDiaryHeader(htmlutil.Text(header))
}

// requiredRows returns the rows of a section that may only be missing when the
// portal marks the page as empty.
func (p DiaryParser) requiredRows(root *goquery.Selection, section string, container htmlutil.Selector) ([]*goquery.Selection, error) {
	found, ok := htmlutil.First(root, container)
	if ok {
		return htmlutil.All(found, p.selectors.Row), nil
	}
	if _, empty := htmlutil.First(root, p.selectors.EmptyMarker); empty {
		return nil, nil
	}
	return nil, malformed(PageDiary, section, "%s not found", container)
}

// optionalRows returns the rows of a section that may be missing entirely.
func (p DiaryParser) optionalRows(root *goquery.Selection, container, row htmlutil.Selector) []*goquery.Selection {
	found, ok := htmlutil.First(root, container)
	if !ok {
		return nil
	}
	return htmlutil.All(found, row)
}

func (p DiaryParser) child(row *goquery.Selection, section string, index int, s htmlutil.Selector) (string, error) {
	found, ok := htmlutil.First(row, s)
	if !ok {
		return "", malformed(PageDiary, section, "row %d: %s not found", index, s)
	}
	return htmlutil.Text(found), nil
}

func (p DiaryParser) labelPair(row *goquery.Selection, section string, index int) (string, string, error) {
	labels := htmlutil.All(row, p.selectors.Label)
	if len(labels) != 2 {
		return "", "", malformed(PageDiary, section, "row %d: expected 2 %s, got %d", index, p.selectors.Label, len(labels))
	}
	return htmlutil.Text(labels[0]), htmlutil.Text(labels[1]), nil
}

func (p DiaryParser) themes(root *goquery.Selection) ([]Theme, error) {
	rows, err := p.requiredRows(root, "themes", p.selectors.Themes)
	if err != nil {
		return nil, err
	}
	themes := []Theme{}
	for i, row := range rows {
		subject, err := p.child(row, "themes", i, p.selectors.Label)
		if err != nil {
			return nil, err
		}
		text, err := p.child(row, "themes", i, p.selectors.Paragraph)
		if err != nil {
			return nil, err
		}
		themes = append(themes, Theme{SubjectName: subject, ThemeText: text})
	}
	return themes, nil
}

// splitValues splits an attendance status cell like "Н, УП" into its marks.
func splitValues(text string) []string {
	values := []string{}
	for _, v := range strings.Split(text, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

func (p DiaryParser) attendances(root *goquery.Selection) ([]AttendanceEntry, error) {
	rows := p.optionalRows(root, p.selectors.Attendance, p.selectors.Row)
	if len(rows) == 0 {
		return placeholderAttendance(), nil
	}
	attendances := []AttendanceEntry{}
	for i, row := range rows {
		label, values, err := p.labelPair(row, "attendance", i)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, AttendanceEntry{
			Label:  label,
			Values: splitValues(values),
		})
	}
	return attendances, nil
}

func (p DiaryParser) progress(root *goquery.Selection) ([]ProgressEntry, error) {
	rows, err := p.requiredRows(root, "progress", p.selectors.Progress)
	if err != nil {
		return nil, err
	}
	progress := []ProgressEntry{}
	for i, row := range rows {
		subject, grade, err := p.labelPair(row, "progress", i)
		if err != nil {
			return nil, err
		}
		workType, err := p.child(row, "progress", i, p.selectors.SecondaryParagraph)
		if err != nil {
			return nil, err
		}
		progress = append(progress, ProgressEntry{
			Grade:       grade,
			WorkType:    workType,
			SubjectName: subject,
		})
	}
	return progress, nil
}

func (p DiaryParser) schedules(root *goquery.Selection) ([]ScheduleDay, error) {
	rows := p.optionalRows(root, p.selectors.Schedule, p.selectors.ScheduleRow)
	if len(rows) == 0 {
		return placeholderSchedule(), nil
	}
	schedules := []ScheduleDay{}
	for i, row := range rows {
		day, err := p.child(row, "schedule", i, p.selectors.DayTitle)
		if err != nil {
			return nil, err
		}
		lessons := []string{}
		for _, lesson := range htmlutil.All(row, p.selectors.Lesson) {
			lessons = append(lessons, htmlutil.Text(lesson))
		}
		schedules = append(schedules, ScheduleDay{DayLabel: day, Lessons: lessons})
	}
	return schedules, nil
}

func (p DiaryParser) homeworks(root *goquery.Selection) ([]HomeworkEntry, error) {
	rows := p.optionalRows(root, p.selectors.Homework, p.selectors.Row)
	if len(rows) == 0 {
		return placeholderHomework(), nil
	}
	homeworks := []HomeworkEntry{}
	for i, row := range rows {
		subject, err := p.child(row, "homework", i, p.selectors.Label)
		if err != nil {
			return nil, err
		}
		text, err := p.child(row, "homework", i, p.selectors.SecondaryParagraph)
		if err != nil {
			return nil, err
		}
		homeworks = append(homeworks, HomeworkEntry{SubjectName: subject, HomeworkText: text})
	}
	return homeworks, nil
}

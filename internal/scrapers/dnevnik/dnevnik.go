package dnevnik

import (
	"context"
	"dnevnik-client/internal/components/assert"
	"dnevnik-client/internal/components/chrono"
	"dnevnik-client/internal/components/telemetry"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"slices"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("dnevnik-client/internal/scrapers/dnevnik")

const (
	report_scraper_class_users = "scraper.class-users"
	report_scraper_people      = "scraper.people"
	report_scraper_calendar    = "scraper.calendar"
	report_scraper_diary       = "scraper.diary"
	report_scraper_group       = "scraper.group"
)

const (
	DefaultPeoplePages   = 100_000
	DefaultBirthdayPages = 100
)

var (
	SearchGroups   = []string{"all", "students", "staff", "administrators", "teachers", "management", "director"}
	BirthdayGroups = []string{"all", "students", "staff", "class"}
)

// Scraper is the high level API over an authenticated Client: it fetches
// pages and hands them to the parsers.
type Scraper struct {
	client *Client
	tel    telemetry.API
	time   chrono.TimeAPI

	users    UserListParser
	calendar CalendarParser
	diary    DiaryParser
}

func NewScraper(client *Client, time chrono.TimeAPI, tel telemetry.API) Scraper {
	assert.NotNil(client)
	assert.NotNil(time)
	assert.NotNil(tel)

	return Scraper{
		client:   client,
		tel:      telemetry.NewScopedAPI("dnevnik_scraper", tel),
		time:     time,
		users:    NewUserListParser(UserListSelectors),
		calendar: NewCalendarParser(CalendarSelectors),
		diary:    NewDiaryParser(DiarySelectors),
	}
}

func (s Scraper) usersPage(ctx context.Context, report, endpoint string, params map[string]string) (UserPage, error) {
	page, err := s.client.get(ctx, endpoint, params)
	if err != nil {
		s.tel.ReportBroken(report, fmt.Errorf("fetch: %w", err), endpoint)
		return UserPage{}, err
	}
	users, err := s.users.Parse(page)
	if err != nil {
		s.tel.ReportBroken(report, fmt.Errorf("parse: %w", err), endpoint)
		return UserPage{}, err
	}
	return users, nil
}

// ClassUsers returns the classmates of the authenticated user.
func (s Scraper) ClassUsers(ctx context.Context) (UserPage, error) {
	ctx, span := tracer.Start(ctx, "scraper:ClassUsers")
	defer span.End()

	endpoint, err := s.client.schoolsEndpoint("class.aspx")
	if err != nil {
		return UserPage{}, err
	}
	users, err := s.usersPage(ctx, report_scraper_class_users, endpoint, map[string]string{
		"class": s.client.session.GroupID,
		"view":  "members",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get class users")
		return UserPage{}, err
	}
	return users, nil
}

func (s Scraper) normalizeGroup(group string, allowed []string) string {
	if slices.Contains(allowed, group) {
		return group
	}
	if group != "" {
		s.tel.ReportWarning(report_scraper_group, fmt.Sprintf("unknown group %q, using \"all\"", group))
	}
	return "all"
}

func (s Scraper) paginate(ctx context.Context, endpoint string, maxPages int, params map[string]string) iter.Seq2[UserPage, error] {
	return Paginate(ctx, maxPages, func(ctx context.Context, page int) (UserPage, error) {
		pageParams := map[string]string{"page": strconv.Itoa(page)}
		for k, v := range params {
			pageParams[k] = v
		}
		return s.usersPage(ctx, report_scraper_people, endpoint, pageParams)
	})
}

type SearchOptions struct {
	// Name matches first, last or middle name, separately or together.
	Name string
	// Group is one of SearchGroups, anything else searches "all".
	Group string
	// Class restricts the search to a class name (ex. "9А").
	Class string
	// MaxPages bounds the number of fetched pages, 0 means DefaultPeoplePages.
	MaxPages int
}

// SearchPeople searches the members of the user's school page by page.
func (s Scraper) SearchPeople(ctx context.Context, opts SearchOptions) iter.Seq2[UserPage, error] {
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultPeoplePages
	}
	endpoint, err := s.client.schoolsEndpoint("school.aspx")
	if err != nil {
		return errorSeq(err)
	}
	return s.paginate(ctx, endpoint, maxPages, map[string]string{
		"school": s.client.session.SchoolID,
		"view":   "members",
		"group":  s.normalizeGroup(opts.Group, SearchGroups),
		"class":  opts.Class,
		"search": opts.Name,
	})
}

// AllPeople lists every member of the user's school.
func (s Scraper) AllPeople(ctx context.Context, maxPages int) iter.Seq2[UserPage, error] {
	if maxPages <= 0 {
		maxPages = DefaultPeoplePages
	}
	endpoint, err := s.client.schoolsEndpoint("school.aspx")
	if err != nil {
		return errorSeq(err)
	}
	return s.paginate(ctx, endpoint, maxPages, map[string]string{
		"school": s.client.session.SchoolID,
		"view":   "members",
	})
}

// BirthdaysNear lists the people whose birthday is today or within the next
// days. Group is one of BirthdayGroups.
func (s Scraper) BirthdaysNear(ctx context.Context, group string, maxPages int) iter.Seq2[UserPage, error] {
	if maxPages <= 0 {
		maxPages = DefaultBirthdayPages
	}
	endpoint, err := s.client.schoolsEndpoint("birthdays.aspx")
	if err != nil {
		return errorSeq(err)
	}
	return s.paginate(ctx, endpoint, maxPages, map[string]string{
		"school": s.client.session.SchoolID,
		"group":  s.normalizeGroup(group, BirthdayGroups),
	})
}

func errorSeq(err error) iter.Seq2[UserPage, error] {
	return func(yield func(UserPage, error) bool) {
		yield(UserPage{}, err)
	}
}

// CalendarBirthdays returns the number of celebrants for every day of the year.
func (s Scraper) CalendarBirthdays(ctx context.Context) (YearCalendar, error) {
	ctx, span := tracer.Start(ctx, "scraper:CalendarBirthdays")
	defer span.End()

	endpoint, err := s.client.schoolsEndpoint("birthdays.aspx")
	if err != nil {
		return YearCalendar{}, err
	}
	page, err := s.client.get(ctx, endpoint, map[string]string{
		"school": s.client.session.SchoolID,
		"view":   "calendar",
	})
	if err != nil {
		s.tel.ReportBroken(report_scraper_calendar, fmt.Errorf("fetch: %w", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch calendar")
		return YearCalendar{}, err
	}
	calendar, err := s.calendar.Parse(page)
	if err != nil {
		s.tel.ReportBroken(report_scraper_calendar, fmt.Errorf("parse: %w", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse calendar")
		return YearCalendar{}, err
	}
	span.SetAttributes(attribute.Int("dnevnik.calendar_days", len(calendar.Days)))
	return calendar, nil
}

// Diary returns the weekly diary report for the week containing period.
func (s Scraper) Diary(ctx context.Context, period time.Time) (DiaryReport, error) {
	ctx, span := tracer.Start(ctx, "scraper:Diary")
	defer span.End()

	formatted := chrono.FormatPeriod(period)
	span.SetAttributes(attribute.String("dnevnik.period", formatted))

	session := s.client.session
	endpoint, err := url.JoinPath(
		s.client.opts.WeekDiaryURL,
		session.ProfileID,
		session.SchoolID,
		strconv.Itoa(period.Year()),
		formatted,
	)
	if err != nil {
		return DiaryReport{}, err
	}

	page, err := s.client.get(ctx, endpoint, nil)
	if errors.Is(err, ErrBadStatus) {
		span.SetStatus(codes.Error, "diary page not found")
		return DiaryReport{}, fmt.Errorf("%w: diary for %s: %w", ErrPageNotFound, formatted, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch diary")
		return DiaryReport{}, err
	}

	report, err := s.diary.Parse(page)
	if err != nil {
		s.tel.ReportBroken(report_scraper_diary, err, formatted)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse diary")
		return DiaryReport{}, err
	}
	return report, nil
}

// DiaryThisWeek returns the diary report for the current week.
func (s Scraper) DiaryThisWeek(ctx context.Context) (DiaryReport, error) {
	return s.Diary(ctx, s.time.Now())
}

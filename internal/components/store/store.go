package store

import (
	"context"
	"database/sql"
	"dnevnik-client/internal/components/assert"
	"dnevnik-client/internal/components/chrono"
	"dnevnik-client/internal/scrapers/dnevnik"
	"dnevnik-client/pkg/migrations"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:embed schema.sql
var Schema string

// kinds of run, they name the command that produced the rows
const (
	RunClass     = "class"
	RunSearch    = "search"
	RunPeople    = "people"
	RunBirthdays = "birthdays"
	RunCalendar  = "calendar"
	RunDiary     = "diary"
)

// Store persists scrape results, every result belongs to a run.
type Store struct {
	db   *sql.DB
	time chrono.TimeAPI
}

func NewStore(database *sql.DB, time chrono.TimeAPI) Store {
	assert.NotNil(database)
	assert.NotNil(time)
	return Store{db: database, time: time}
}

// Open opens the database at path and applies Schema.
func Open(path string, time chrono.TimeAPI) (Store, error) {
	database, err := migrations.OpenAndMigrateDB(Schema, path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(database, time), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

type Run struct {
	ID        string
	Kind      string
	StartedAt time.Time
}

func (s Store) BeginRun(ctx context.Context, kind string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: s.time.Now(),
	}
	_, err := s.db.ExecContext(
		ctx,
		"insert into runs (id, kind, started_at) values (?, ?, ?)",
		run.ID, run.Kind, run.StartedAt.Unix(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	return run, nil
}

// Runs lists every run, most recent first.
func (s Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, "select id, kind, started_at from runs order by started_at desc, rowid desc")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var startedAt int64
		err := rows.Scan(&run.ID, &run.Kind, &startedAt)
		if err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(startedAt, 0).In(chrono.Moscow())
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveUserPage stores one page of a people listing, saving the same page twice
// replaces it.
func (s Store) SaveUserPage(ctx context.Context, runID string, page int, users dnevnik.UserPage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from users where run_id = ? and page = ?", runID, page)
	if err != nil {
		return err
	}
	for i, user := range users.Items {
		_, err := tx.ExecContext(
			ctx,
			`insert into users (run_id, page, position, total, display_name, profile_url)
			values (?, ?, ?, ?, ?, ?)`,
			runID, page, i, users.Count, user.DisplayName, user.ProfileURL,
		)
		if err != nil {
			return fmt.Errorf("save user %q: %w", user.DisplayName, err)
		}
	}
	return tx.Commit()
}

// Users returns every stored person of a run in page order.
func (s Store) Users(ctx context.Context, runID string) ([]dnevnik.UserRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"select display_name, profile_url from users where run_id = ? order by page, position",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []dnevnik.UserRecord{}
	for rows.Next() {
		var user dnevnik.UserRecord
		err := rows.Scan(&user.DisplayName, &user.ProfileURL)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s Store) SaveCalendar(ctx context.Context, runID string, calendar dnevnik.YearCalendar) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from calendar_days where run_id = ?", runID)
	if err != nil {
		return err
	}
	for i, day := range calendar.Days {
		_, err := tx.ExecContext(
			ctx,
			`insert into calendar_days (run_id, position, month, day, count, url)
			values (?, ?, ?, ?, ?, ?)`,
			runID, i, day.Month, day.Day, day.Count, day.URL,
		)
		if err != nil {
			return fmt.Errorf("save calendar day %s: %w", day, err)
		}
	}
	return tx.Commit()
}

func (s Store) Calendar(ctx context.Context, runID string) (dnevnik.YearCalendar, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"select month, day, count, url from calendar_days where run_id = ? order by position",
		runID,
	)
	if err != nil {
		return dnevnik.YearCalendar{}, err
	}
	defer rows.Close()

	days := []dnevnik.CalendarDay{}
	for rows.Next() {
		var day dnevnik.CalendarDay
		err := rows.Scan(&day.Month, &day.Day, &day.Count, &day.URL)
		if err != nil {
			return dnevnik.YearCalendar{}, err
		}
		days = append(days, day)
	}
	return dnevnik.YearCalendar{Days: days}, rows.Err()
}

type diarySections struct {
	Themes      []dnevnik.Theme           `json:"themes"`
	Attendances []dnevnik.AttendanceEntry `json:"attendances"`
	Progress    []dnevnik.ProgressEntry   `json:"progress"`
	Schedules   []dnevnik.ScheduleDay     `json:"schedules"`
	Homeworks   []dnevnik.HomeworkEntry   `json:"homeworks"`
}

// SaveDiary stores the report of the week identified by period (dd.mm.yyyy).
func (s Store) SaveDiary(ctx context.Context, runID, period string, report dnevnik.DiaryReport) error {
	sections, err := json.Marshal(diarySections{
		Themes:      report.Themes,
		Attendances: report.Attendances,
		Progress:    report.Progress,
		Schedules:   report.Schedules,
		Homeworks:   report.Homeworks,
	})
	if err != nil {
		return err
	}

	info := report.Info
	_, err = s.db.ExecContext(
		ctx,
		`insert or replace into diary_reports (
			run_id, period, student_name, school_name, class_name, academic_year, report_date, sections
		) values (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, period,
		info.StudentName, info.SchoolName, info.ClassName, info.AcademicYear, info.ReportDate,
		string(sections),
	)
	if err != nil {
		return fmt.Errorf("save diary %s: %w", period, err)
	}
	return nil
}

// Diary returns a stored report, sql.ErrNoRows when the run has no report for period.
func (s Store) Diary(ctx context.Context, runID, period string) (dnevnik.DiaryReport, error) {
	var report dnevnik.DiaryReport
	var sections string
	err := s.db.QueryRowContext(
		ctx,
		`select student_name, school_name, class_name, academic_year, report_date, sections
		from diary_reports where run_id = ? and period = ?`,
		runID, period,
	).Scan(
		&report.Info.StudentName,
		&report.Info.SchoolName,
		&report.Info.ClassName,
		&report.Info.AcademicYear,
		&report.Info.ReportDate,
		&sections,
	)
	if err != nil {
		return dnevnik.DiaryReport{}, err
	}

	var decoded diarySections
	err = json.Unmarshal([]byte(sections), &decoded)
	if err != nil {
		return dnevnik.DiaryReport{}, fmt.Errorf("decode diary %s: %w", period, err)
	}
	report.Themes = decoded.Themes
	report.Attendances = decoded.Attendances
	report.Progress = decoded.Progress
	report.Schedules = decoded.Schedules
	report.Homeworks = decoded.Homeworks
	return report, nil
}

package store

import (
	"context"
	"database/sql"
	"dnevnik-client/internal/components/chrono"
	"dnevnik-client/internal/scrapers/dnevnik"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func openTestStore(t testing.TB) Store {
	now := chrono.FixedTime(time.Date(2024, 5, 6, 9, 30, 0, 0, chrono.Moscow()))
	store, err := Open(":memory:", now)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Empty(t, runs)

	first, err := store.BeginRun(ctx, RunClass)
	require.NoError(t, err)
	second, err := store.BeginRun(ctx, RunDiary)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	runs, err = store.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, second.ID, runs[0].ID)
	require.Equal(t, RunClass, runs[1].Kind)
	require.True(t, first.StartedAt.Equal(runs[1].StartedAt))
}

func TestUsers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, RunSearch)
	require.NoError(t, err)

	pageTwo := dnevnik.UserPage{Count: 3, Items: []dnevnik.UserRecord{
		{DisplayName: "Вера Кузнецова"},
	}}
	pageOne := dnevnik.UserPage{Count: 3, Items: []dnevnik.UserRecord{
		{DisplayName: "Анна Иванова", ProfileURL: "https://dnevnik.ru/user/user.aspx?user=1"},
		{DisplayName: "Борис Смирнов", ProfileURL: "https://dnevnik.ru/user/user.aspx?user=2"},
	}}
	require.NoError(t, store.SaveUserPage(ctx, run.ID, 2, pageTwo))
	require.NoError(t, store.SaveUserPage(ctx, run.ID, 1, pageOne))
	// saving a page again replaces it
	require.NoError(t, store.SaveUserPage(ctx, run.ID, 1, pageOne))

	users, err := store.Users(ctx, run.ID)
	require.NoError(t, err)
	expected := append(append([]dnevnik.UserRecord{}, pageOne.Items...), pageTwo.Items...)
	if diff := cmp.Diff(expected, users); diff != "" {
		t.Fatal(diff)
	}

	users, err = store.Users(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestSaveUserPageUnknownRun(t *testing.T) {
	store := openTestStore(t)
	err := store.SaveUserPage(context.Background(), "unknown", 1, dnevnik.UserPage{
		Count: 1,
		Items: []dnevnik.UserRecord{{DisplayName: "a"}},
	})
	require.Error(t, err)
}

func TestCalendar(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, RunCalendar)
	require.NoError(t, err)

	calendar := dnevnik.YearCalendar{Days: []dnevnik.CalendarDay{
		{Count: 2, Day: 1, Month: "Январь", URL: "/birthdays.aspx?day=1&month=1"},
		{Count: 0, Day: 2, Month: "Январь", URL: "/birthdays.aspx?day=2&month=1"},
	}}
	require.NoError(t, store.SaveCalendar(ctx, run.ID, calendar))

	stored, err := store.Calendar(ctx, run.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(calendar, stored); diff != "" {
		t.Fatal(diff)
	}
}

func TestDiary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, RunDiary)
	require.NoError(t, err)

	report := dnevnik.DiaryReport{
		Info: dnevnik.DiaryInfo{
			StudentName:  "Ivan Petrov",
			SchoolName:   "School 17",
			ClassName:    "9A",
			AcademicYear: "2023/2024",
			ReportDate:   "06.05.2024",
		},
		Themes:      []dnevnik.Theme{{SubjectName: "Math", ThemeText: "Algebra"}},
		Attendances: []dnevnik.AttendanceEntry{{Label: "2024-05-01", Values: []string{"present"}}},
		Progress:    []dnevnik.ProgressEntry{{Grade: "5", WorkType: "quiz", SubjectName: "Math"}},
		Schedules:   []dnevnik.ScheduleDay{{DayLabel: "Monday", Lessons: []string{"Math", "PE"}}},
		Homeworks:   []dnevnik.HomeworkEntry{{SubjectName: "Math", HomeworkText: "p.12 ex.3"}},
	}
	require.NoError(t, store.SaveDiary(ctx, run.ID, "06.05.2024", report))

	stored, err := store.Diary(ctx, run.ID, "06.05.2024")
	require.NoError(t, err)
	if diff := cmp.Diff(report, stored); diff != "" {
		t.Fatal(diff)
	}

	_, err = store.Diary(ctx, run.ID, "13.05.2024")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

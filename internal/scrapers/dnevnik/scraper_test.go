package dnevnik

import (
	"context"
	"dnevnik-client/internal/components/chrono"
	"dnevnik-client/internal/components/telemetry"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePortal struct {
	server    *httptest.Server
	feedHits  atomic.Int32
	flakyHits atomic.Int32
	lastQuery atomic.Value
}

func newFakePortal(t testing.TB) *fakePortal {
	portal := &fakePortal{}

	feed := readFixture(t, "userfeed.html")
	users := readFixture(t, "users.html")
	empty := readFixture(t, "users_empty.html")
	calendar := readFixture(t, "calendar.html")
	diary := readFixture(t, "diary.html")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("login") != "ivan" || r.PostForm.Get("password") != "secret" {
			w.Write([]byte(empty))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: AuthCookie, Value: "token", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: SchoolCookie, Value: "42", Path: "/"})
		w.Write([]byte(feed))
	})
	mux.HandleFunc("GET /userfeed", func(w http.ResponseWriter, r *http.Request) {
		portal.feedHits.Add(1)
		cookie, err := r.Cookie(AuthCookie)
		if err != nil || cookie.Value != "token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(feed))
	})
	mux.HandleFunc("GET /schools/class.aspx", func(w http.ResponseWriter, r *http.Request) {
		portal.lastQuery.Store(r.URL.Query().Encode())
		w.Write([]byte(users))
	})
	mux.HandleFunc("GET /schools/school.aspx", func(w http.ResponseWriter, r *http.Request) {
		portal.lastQuery.Store(r.URL.Query().Encode())
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page > 2 {
			w.Write([]byte(empty))
			return
		}
		w.Write([]byte(users))
	})
	mux.HandleFunc("GET /schools/birthdays.aspx", func(w http.ResponseWriter, r *http.Request) {
		portal.lastQuery.Store(r.URL.Query().Encode())
		if r.URL.Query().Get("view") == "calendar" {
			w.Write([]byte(calendar))
			return
		}
		if r.URL.Query().Get("page") == "1" {
			w.Write([]byte(users))
			return
		}
		w.Write([]byte(empty))
	})
	mux.HandleFunc("GET /diary/1000055555/42/2024/06.05.2024", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(diary))
	})
	mux.HandleFunc("GET /flaky", func(w http.ResponseWriter, r *http.Request) {
		if portal.flakyHits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	})

	portal.server = httptest.NewServer(mux)
	t.Cleanup(portal.server.Close)
	return portal
}

func (p *fakePortal) options() ClientOptions {
	opts := DefaultClientOptions()
	opts.SchoolsURL = p.server.URL + "/schools/"
	opts.FeedURL = p.server.URL + "/userfeed"
	opts.LoginURL = p.server.URL + "/login"
	opts.WeekDiaryURL = p.server.URL + "/diary/"
	opts.Delay = time.Millisecond
	opts.Attempts = 2
	opts.Timeout = 5 * time.Second
	return opts
}

func newLoggedInScraper(t testing.TB, portal *fakePortal) (Scraper, *telemetry.RecordingAPI) {
	tel := &telemetry.RecordingAPI{}
	client, err := NewClient(portal.options(), tel)
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background(), "ivan", "secret"))

	now := chrono.FixedTime(time.Date(2024, 5, 6, 12, 0, 0, 0, chrono.Moscow()))
	return NewScraper(client, now, tel), tel
}

func TestLogin(t *testing.T) {
	portal := newFakePortal(t)
	client, err := NewClient(portal.options(), &telemetry.RecordingAPI{})
	require.NoError(t, err)

	err = client.Login(context.Background(), "ivan", "secret")
	require.NoError(t, err)
	require.Equal(t, Session{
		SchoolID:  "42",
		GroupID:   "1000012345",
		ProfileID: "1000055555",
	}, client.Session())
}

func TestLoginFailed(t *testing.T) {
	portal := newFakePortal(t)
	client, err := NewClient(portal.options(), &telemetry.RecordingAPI{})
	require.NoError(t, err)

	err = client.Login(context.Background(), "ivan", "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestUseCookies(t *testing.T) {
	portal := newFakePortal(t)
	client, err := NewClient(portal.options(), &telemetry.RecordingAPI{})
	require.NoError(t, err)

	err = client.UseCookies(context.Background(), "token", "42")
	require.NoError(t, err)
	require.Equal(t, "1000012345", client.Session().GroupID)
	require.Equal(t, "1000055555", client.Session().ProfileID)
	require.Equal(t, "42", client.Session().SchoolID)
}

func TestUseCookiesRejected(t *testing.T) {
	portal := newFakePortal(t)
	client, err := NewClient(portal.options(), &telemetry.RecordingAPI{})
	require.NoError(t, err)

	err = client.UseCookies(context.Background(), "expired", "42")
	require.ErrorIs(t, err, ErrLoginFailed)
	require.ErrorIs(t, err, ErrBadStatus)
	require.EqualValues(t, 2, portal.feedHits.Load(), "should retry up to the attempt limit")
}

func TestFetchRetries(t *testing.T) {
	portal := newFakePortal(t)
	client, err := NewClient(portal.options(), &telemetry.RecordingAPI{})
	require.NoError(t, err)

	body, err := client.get(context.Background(), portal.server.URL+"/flaky", nil)
	require.NoError(t, err)
	require.Equal(t, "ok", body)
	require.EqualValues(t, 2, portal.flakyHits.Load())
}

func TestClassUsers(t *testing.T) {
	portal := newFakePortal(t)
	scraper, _ := newLoggedInScraper(t, portal)

	users, err := scraper.ClassUsers(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, users.Count)
	require.Len(t, users.Items, 3)
	require.Equal(t, "class=1000012345&view=members", portal.lastQuery.Load())
}

func TestSearchPeople(t *testing.T) {
	portal := newFakePortal(t)
	scraper, tel := newLoggedInScraper(t, portal)

	pages, err := CollectPages(scraper.SearchPeople(context.Background(), SearchOptions{
		Name:  "Анна",
		Group: "wizards",
		Class: "9A",
	}))
	require.NoError(t, err)
	require.Len(t, pages, 2)

	warnings := tel.Reports("warning")
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Id, report_scraper_group)

	require.Contains(t, portal.lastQuery.Load(), "group=all")
	require.Contains(t, portal.lastQuery.Load(), "class=9A")
	require.Contains(t, portal.lastQuery.Load(), "school=42")
}

func TestAllPeopleMaxPages(t *testing.T) {
	portal := newFakePortal(t)
	scraper, _ := newLoggedInScraper(t, portal)

	pages, err := CollectPages(scraper.AllPeople(context.Background(), 1))
	require.NoError(t, err)
	require.Len(t, pages, 1)
}

func TestBirthdays(t *testing.T) {
	portal := newFakePortal(t)
	scraper, _ := newLoggedInScraper(t, portal)

	pages, err := CollectPages(scraper.BirthdaysNear(context.Background(), "students", 0))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Contains(t, portal.lastQuery.Load(), "group=students")

	calendar, err := scraper.CalendarBirthdays(context.Background())
	require.NoError(t, err)
	require.Len(t, calendar.Days, 3)
}

func TestDiary(t *testing.T) {
	portal := newFakePortal(t)
	scraper, _ := newLoggedInScraper(t, portal)

	report, err := scraper.DiaryThisWeek(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Ivan Petrov", report.Info.StudentName)
	require.Len(t, report.Homeworks, 1)

	_, err = scraper.Diary(context.Background(), time.Date(2024, 5, 13, 0, 0, 0, 0, chrono.Moscow()))
	require.ErrorIs(t, err, ErrPageNotFound)
}

func TestRawPages(t *testing.T) {
	portal := newFakePortal(t)
	scraper, _ := newLoggedInScraper(t, portal)

	pages, err := scraper.RawPages(context.Background(), time.Date(2024, 5, 6, 0, 0, 0, 0, chrono.Moscow()))
	require.NoError(t, err)

	names := make([]string, len(pages))
	for i, page := range pages {
		names[i] = page.Name
		require.NotEmpty(t, page.Contents, page.Name)
	}
	require.Equal(t, []string{"diary", "bday_calendar", "userfeed", "school", "bday_near", "class_users"}, names)
}

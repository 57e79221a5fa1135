// client.go contains the session layer: fetching pages with a bounded retry,
// logging in and discovering the ids later requests need.

package dnevnik

import (
	"context"
	"dnevnik-client/internal/components/assert"
	"dnevnik-client/internal/components/telemetry"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch     = "client.fetch"
	report_client_login     = "client.login"
	report_client_parse_ids = "client.parse-ids"
)

const (
	// AuthCookie carries the authenticated session.
	AuthCookie = "DnevnikAuth_a"
	// SchoolCookie carries the id of the user's school.
	SchoolCookie = "t0"
)

type ClientOptions struct {
	SchoolsURL   string
	FeedURL      string
	LoginURL     string
	WeekDiaryURL string

	UserAgent string
	// Delay is waited before every attempt, retries included.
	Delay    time.Duration
	Attempts int
	Timeout  time.Duration

	// Output receives a dump of every http exchange, it can be nil.
	Output telemetry.InstrumentOutput
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		SchoolsURL:   "https://schools.dnevnik.ru/",
		FeedURL:      "https://dnevnik.ru/userfeed",
		LoginURL:     "https://login.dnevnik.ru/login",
		WeekDiaryURL: "https://dnevnik.ru/currentprogress/result/",
		UserAgent:    "Mozilla/5.0 (Wayland; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/94.0.4606.72 Safari/537.36",
		Delay:        500 * time.Millisecond,
		Attempts:     3,
		Timeout:      30 * time.Second,
	}
}

// Session holds the ids discovered after authentication.
type Session struct {
	SchoolID  string
	GroupID   string
	ProfileID string
}

type Client struct {
	http    *resty.Client
	jar     http.CookieJar
	opts    ClientOptions
	tel     telemetry.API
	session Session
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	assert.Positive(opts.Attempts)

	tel = telemetry.NewScopedAPI("dnevnik_client", tel)

	httpClient := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetTimeout(opts.Timeout)

	httpClient.
		SetRetryCount(opts.Attempts-1).
		SetRetryWaitTime(opts.Delay).
		SetRetryMaxWaitTime(opts.Delay).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			return err == nil && res.StatusCode() != http.StatusOK
		})

	// one request per delay, the first one included
	limiter := rate.NewLimiter(rate.Every(opts.Delay), 1)
	if opts.Delay <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return &Client{
		http: httpClient,
		jar:  jar,
		opts: opts,
		tel:  tel,
	}, nil
}

// Session returns the ids of the authenticated user.
func (c *Client) Session() Session {
	return c.session
}

// Fetch sends a request and returns the body, failing with ErrBadStatus when
// the last attempt did not answer 200.
func (c *Client) Fetch(ctx context.Context, method, endpoint string, params, form map[string]string) (string, error) {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if len(form) > 0 {
		req.SetFormData(form)
	}

	res, err := req.Execute(method, endpoint)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("%s %s: %w", method, endpoint, err))
		return "", err
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf(
			"%w: %s %s answered %d after %d attempts",
			ErrBadStatus, method, endpoint, res.StatusCode(), res.Request.Attempt,
		)
	}
	return res.String(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string) (string, error) {
	return c.Fetch(ctx, http.MethodGet, endpoint, params, nil)
}

func (c *Client) schoolsEndpoint(path string) (string, error) {
	return url.JoinPath(c.opts.SchoolsURL, path)
}

func (c *Client) cookie(name string) (string, bool) {
	for _, endpoint := range []string{c.opts.LoginURL, c.opts.FeedURL, c.opts.SchoolsURL} {
		u, err := url.Parse(endpoint)
		if err != nil {
			continue
		}
		for _, cookie := range c.jar.Cookies(u) {
			if cookie.Name == name {
				return cookie.Value, true
			}
		}
	}
	return "", false
}

// parseIDs fills the group and profile ids from an authenticated page.
func (c *Client) parseIDs(page string) error {
	groupId, err := ExtractGroupID(page)
	if err != nil {
		c.tel.ReportBroken(report_client_parse_ids, err)
		return err
	}
	profileId, err := ExtractProfileID(page)
	if err != nil {
		c.tel.ReportBroken(report_client_parse_ids, err)
		return err
	}
	c.session.GroupID = groupId
	c.session.ProfileID = profileId
	return nil
}

// Login authenticates with the portal's own login form.
func (c *Client) Login(ctx context.Context, login, password string) error {
	assert.NotEmptyStr(login)
	assert.NotEmptyStr(password)

	loginError := func(err error) error {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	page, err := c.Fetch(ctx, http.MethodPost, c.opts.LoginURL, nil, map[string]string{
		"login":    login,
		"password": password,
	})
	if err != nil {
		return loginError(err)
	}

	schoolId, ok := c.cookie(SchoolCookie)
	if !ok {
		c.tel.ReportWarning(report_client_login, "no school cookie after login", login)
		return fmt.Errorf("%w: no %s cookie in response", ErrLoginFailed, SchoolCookie)
	}
	c.session.SchoolID = schoolId

	err = c.parseIDs(page)
	if err != nil {
		return loginError(err)
	}
	c.tel.ReportDebug(report_client_login, c.session)
	return nil
}

// UseCookies resumes a session authenticated elsewhere (ex. through a browser)
// and discovers the ids from the user feed.
func (c *Client) UseCookies(ctx context.Context, authCookie, schoolId string) error {
	assert.NotEmptyStr(authCookie)
	assert.NotEmptyStr(schoolId)

	c.http.SetCookies([]*http.Cookie{
		{Name: AuthCookie, Value: authCookie},
		{Name: SchoolCookie, Value: schoolId},
	})
	c.session.SchoolID = schoolId

	page, err := c.get(ctx, c.opts.FeedURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	err = c.parseIDs(page)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	return nil
}

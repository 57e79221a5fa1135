package commands

import (
	"context"
	"dnevnik-client/internal/components/chrono"
	"dnevnik-client/internal/components/configutil"
	"dnevnik-client/internal/components/store"
	"dnevnik-client/internal/components/telemetry"
	"dnevnik-client/internal/scrapers/dnevnik"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type HttpConfig struct {
	DelayMs        int    `json:"delay_ms" validate:"gte=0"`
	Attempts       int    `json:"attempts" validate:"gte=0"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"gte=0"`
	UserAgent      string `json:"user_agent"`
}

type UrlConfig struct {
	Schools   string `json:"schools" validate:"omitempty,url"`
	Feed      string `json:"feed" validate:"omitempty,url"`
	Login     string `json:"login" validate:"omitempty,url"`
	WeekDiary string `json:"week_diary" validate:"omitempty,url"`
}

type Config struct {
	Login    string `json:"login" validate:"required_without=AuthCookie"`
	Password string `json:"password" validate:"required_with=Login"`
	// AuthCookie and SchoolId resume a session authenticated in a browser.
	AuthCookie string `json:"auth_cookie"`
	SchoolId   string `json:"school_id" validate:"required_with=AuthCookie"`
	// Date is the default diary week (dd.mm.yyyy).
	Date string `json:"date"`

	Http HttpConfig `json:"http"`
	Urls UrlConfig  `json:"urls"`
}

var (
	configPath string
	dbPath     string
	dumpHttp   string
	verbose    bool

	tel telemetry.API = telemetry.SlogAPI{}
)

var rootCmd = &cobra.Command{
	Use:   "dnevnik-cli",
	Short: "dnevnik-cli is a CLI for scraping the dnevnik.ru school portal.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "config.json5", "The config file (merged with <name>.local.json5).")
	flags.StringVar(&dbPath, "db", "", "A sqlite database to write results to.")
	flags.StringVar(&dumpHttp, "dump-http", "", "A directory to dump every http exchange to.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enables debug logs.")
}

func ExecuteContext(ctx context.Context) {
	tracing, err := telemetry.SetupFromEnv(ctx, "dnevnik-cli")
	if err == nil {
		defer tracing.Shutdown(context.Background())
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

func loadConfig() Config {
	err := configutil.LoadEnv(".env")
	if err != nil {
		fatal("failed to load .env", err)
	}

	cfg, err := configutil.ReadConfig[Config](configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fatal("failed to read config", err)
	}
	cfg.Login = configutil.EnvOr("DNEVNIK_LOGIN", cfg.Login)
	cfg.Password = configutil.EnvOr("DNEVNIK_PASSWORD", cfg.Password)
	cfg.AuthCookie = configutil.EnvOr("DNEVNIK_AUTH_COOKIE", cfg.AuthCookie)
	cfg.SchoolId = configutil.EnvOr("DNEVNIK_SCHOOL_ID", cfg.SchoolId)
	cfg.Date = configutil.EnvOr("DNEVNIK_DATE", cfg.Date)

	err = configutil.Validate(cfg)
	if err != nil {
		fatal("failed to validate config", err)
	}
	return cfg
}

func clientOptions(cfg Config) dnevnik.ClientOptions {
	opts := dnevnik.DefaultClientOptions()
	if cfg.Http.DelayMs > 0 {
		opts.Delay = time.Duration(cfg.Http.DelayMs) * time.Millisecond
	}
	if cfg.Http.Attempts > 0 {
		opts.Attempts = cfg.Http.Attempts
	}
	if cfg.Http.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(cfg.Http.TimeoutSeconds) * time.Second
	}
	if cfg.Http.UserAgent != "" {
		opts.UserAgent = cfg.Http.UserAgent
	}
	if cfg.Urls.Schools != "" {
		opts.SchoolsURL = cfg.Urls.Schools
	}
	if cfg.Urls.Feed != "" {
		opts.FeedURL = cfg.Urls.Feed
	}
	if cfg.Urls.Login != "" {
		opts.LoginURL = cfg.Urls.Login
	}
	if cfg.Urls.WeekDiary != "" {
		opts.WeekDiaryURL = cfg.Urls.WeekDiary
	}

	if dumpHttp != "" {
		output, err := telemetry.NewFilesystemOutput(dumpHttp)
		if err != nil {
			fatal("failed to create http dump directory", err)
		}
		opts.Output = output
	}
	return opts
}

// login creates an authenticated client from the config.
func login(ctx context.Context, cfg Config) *dnevnik.Client {
	client, err := dnevnik.NewClient(clientOptions(cfg), tel)
	if err != nil {
		fatal("failed to initialize client", err)
	}

	if cfg.AuthCookie != "" {
		slog.Info("resuming session from cookies", "school", cfg.SchoolId)
		err = client.UseCookies(ctx, cfg.AuthCookie, cfg.SchoolId)
	} else {
		slog.Info("logging in", "login", cfg.Login)
		err = client.Login(ctx, cfg.Login, cfg.Password)
	}
	if err != nil {
		fatal("failed to log in", err)
	}
	return client
}

func newScraper(ctx context.Context, cfg Config) dnevnik.Scraper {
	return dnevnik.NewScraper(login(ctx, cfg), chrono.NewStandardTime(), tel)
}

// openRun begins a run in the --db store, ok is false when no database was given.
func openRun(ctx context.Context, kind string) (out store.Store, run store.Run, ok bool) {
	if dbPath == "" {
		return store.Store{}, store.Run{}, false
	}
	out, err := store.Open(dbPath, chrono.NewStandardTime())
	if err != nil {
		fatal("failed to open db", err)
	}
	run, err = out.BeginRun(ctx, kind)
	if err != nil {
		fatal("failed to begin run", err)
	}
	slog.Info("saving results", "db", dbPath, "run", run.ID)
	return out, run, true
}

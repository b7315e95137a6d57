package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/clock"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/ids"
	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/ingest/alpha"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/tracker"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	csvPath := flag.String("path", "", "path to an Alpha Progression CSV export (required)")
	serverURL := flag.String("server", "", "LiftLog server URL; when set the export is sent to it instead of the local store")
	dryRun := flag.Bool("dry-run", false, "parse the export and report counts without importing")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlog-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -path export.csv [-config config.yaml | -server <URL>] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Error("cannot open export", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode: nothing will be imported")
		sessions, err := alpha.Parse(f, time.Local)
		if err != nil {
			log.Error("parse failed", "error", err)
			os.Exit(1)
		}
		for _, s := range sessions {
			log.Info("session", "date", s.Date.Format("2006-01-02 15:04"), "name", s.Name, "exercises", len(s.Exercises))
		}
		log.Info("parse complete", "sessions", len(sessions))
		return
	}

	var result *ingest.Result
	if *serverURL != "" {
		result, err = upload(ctx, strings.TrimRight(*serverURL, "/"), f)
	} else {
		result, err = importLocal(ctx, *configPath, f, log)
	}
	if result != nil {
		printResult(log, result)
	}
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}
	log.Info("import complete")
}

func importLocal(ctx context.Context, configPath string, r io.Reader, log *slog.Logger) (*ingest.Result, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Storage.Driver == storage.DriverPostgres {
		if err := storage.RunMigrations(cfg.Database.DSN(), "migrations"); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}
	loc, err := clock.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	store := storage.NewStore(backend, log)
	defer store.Close()

	t := tracker.New(ctx, store, clock.System{Location: loc}, ids.UUID{}, log)
	return alpha.NewProvider(t, loc, log).Ingest(ctx, r)
}

// upload posts the export to a running server's import endpoint.
func upload(ctx context.Context, serverURL string, r io.Reader) (*ingest.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/api/v1/import/alpha", r)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/csv")

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending export: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var result ingest.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &result, nil
}

func printResult(log *slog.Logger, r *ingest.Result) {
	log.Info("import stats",
		"sessions_received", r.SessionsReceived,
		"workouts_inserted", r.WorkoutsInserted,
		"workouts_skipped", r.WorkoutsSkipped,
		"workouts_rejected", r.WorkoutsRejected,
		"sets_received", r.SetsReceived,
		"warmups_skipped", r.WarmupsSkipped,
	)
	for _, reason := range r.RejectedReasons {
		log.Warn("rejected session", "reason", reason)
	}
}

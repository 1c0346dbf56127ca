package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/api/option"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/ai"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/config/file"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/email"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/google"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/storage/memory"
	redisstore "github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/storage/redis"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/storage/sqlite"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driving/cli"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/core/services"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
	"github.com/vishwapandiyan/Resume-screener/internal/postprocessors"
)

// maxPruneInterval bounds how long expired sessions linger in long-running commands.
const maxPruneInterval = 10 * time.Minute

// app holds the wired services and the resources to release on exit.
type app struct {
	services cli.Services
	closers  []func() error
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("close: %v", err)
		}
	}
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// stores groups the persistence ports.
type stores struct {
	vectors  driven.VectorStore
	jds      driven.JobDescriptionStore
	sessions driven.SessionStore
}

// buildApp wires every adapter and service from the settings in home
// (~/.screener when empty). Optional capabilities that fail to start are
// logged and left unset so the commands that do not need them still work.
func buildApp(ctx context.Context, home string) (*app, error) {
	home, err := resolveHome(home)
	if err != nil {
		return nil, err
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	models := ai.Init(settings)
	a.onClose(func() error {
		models.Close()
		return nil
	})

	st, err := openStores(ctx, a, settings, home)
	if err != nil {
		return nil, err
	}

	calendar, mailer := openGoogle(ctx, settings)

	prompts, err := file.NewPromptStore(filepath.Join(home, "prompts"), services.DefaultPrompts())
	if err != nil {
		return nil, fmt.Errorf("open prompts: %w", err)
	}
	background := watchPrompts(a, prompts)

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := registry.BuildPipeline(settingsService.PipelineConfig())
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	timeouts := settings.Timeouts
	expander := services.NewQueryExpander(models.LLMService, timeouts.LLM)
	ranker := services.NewRanker(models.EmbeddingService, st.vectors, expander, timeouts)
	availability := services.NewAvailabilityService(calendar, settings.Scheduler, timeouts.Calendar)
	booking := services.NewBookingWorkflow(availability, calendar, mailer, st.vectors, settings.Job, timeouts)
	sessions := services.NewSessionMemory(st.sessions)
	if ttl := settings.Session.TTL; ttl > 0 {
		if n, err := sessions.Prune(ctx); err != nil {
			logger.Warn("session prune: %v", err)
		} else if n > 0 {
			logger.Debug("pruned %d expired sessions", n)
		}
		background = append(background, sessions.PruneEvery(min(ttl, maxPruneInterval)))
	}

	query := services.NewQueryService(ranker, models.LLMService, sessions, booking, st.jds, st.vectors, timeouts)
	query.SetPromptStore(prompts)

	a.services = cli.Services{
		Ingest:     services.NewIngestService(pipeline, models.EmbeddingService, st.vectors, timeouts),
		Query:      query,
		Intent:     services.NewIntentClassifier(),
		Scheduling: booking,
		Settings:   settingsService,
		Background: background,
	}
	ok = true
	return a, nil
}

func resolveHome(home string) (string, error) {
	if home != "" {
		return home, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(dir, ".screener"), nil
}

// openStores opens the vector, job description and session backends.
// An unreachable redis falls back to in-process sessions.
func openStores(ctx context.Context, a *app, settings *domain.AppSettings, home string) (*stores, error) {
	var db *sqlite.Store
	openDB := func() (*sqlite.Store, error) {
		if db != nil {
			return db, nil
		}
		path := settings.StoragePath
		if path == "" {
			path = filepath.Join(home, "data")
		}
		s, err := sqlite.NewStore(path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.onClose(s.Close)
		db = s
		logger.Debug("sqlite store: %s", s.Path())
		return s, nil
	}

	st := &stores{}
	if settings.Storage == domain.StorageSQLite {
		s, err := openDB()
		if err != nil {
			return nil, err
		}
		st.vectors = s.VectorStore()
		st.jds = s.JobDescriptionStore()
	} else {
		st.vectors = memory.NewVectorStore()
		st.jds = memory.NewJobDescriptionStore()
	}

	switch settings.SessionBackend {
	case domain.StorageRedis:
		rdb, err := redisstore.NewClient(ctx, settings.RedisURL)
		if err != nil {
			logger.Warn("redis sessions disabled, using memory: %v", err)
			st.sessions = memory.NewSessionStore(settings.Session)
			break
		}
		st.sessions = redisstore.NewSessionStore(rdb, settings.Session)
		a.onClose(st.sessions.Close)
	case domain.StorageSQLite:
		s, err := openDB()
		if err != nil {
			return nil, err
		}
		st.sessions = s.SessionStore(settings.Session)
	default:
		st.sessions = memory.NewSessionStore(settings.Session)
	}
	return st, nil
}

// openGoogle connects the calendar and the configured email transport.
// Either result is nil when unavailable.
func openGoogle(ctx context.Context, settings *domain.AppSettings) (driven.CalendarService, driven.EmailTransport) {
	var (
		calendar driven.CalendarService
		mailer   driven.EmailTransport
		opts     []option.ClientOption
	)

	if settings.Google.IsConfigured() {
		o, err := google.ClientOptions(ctx, settings.Google)
		if err != nil {
			logger.Warn("google disabled: %v", err)
		} else {
			opts = o
			cal, err := google.NewCalendarService(ctx, settings.Google.CalendarID, opts...)
			if err != nil {
				logger.Warn("calendar disabled: %v", err)
			} else {
				calendar = cal
			}
		}
	}

	switch settings.EmailTransport {
	case domain.EmailGmail:
		if opts == nil {
			logger.Warn("gmail transport needs google credentials; invitations will not be sent")
			break
		}
		g, err := email.NewGmailTransport(ctx, opts...)
		if err != nil {
			logger.Warn("gmail disabled: %v", err)
			break
		}
		mailer = g
	case domain.EmailSMTP:
		s, err := email.NewSMTPTransport(settings.SMTP)
		if err != nil {
			logger.Warn("smtp disabled: %v", err)
			break
		}
		mailer = s
	}

	return calendar, mailer
}

// watchPrompts returns the background task reloading prompts on file changes.
func watchPrompts(a *app, prompts *file.PromptStore) []func(ctx context.Context) {
	if err := os.MkdirAll(prompts.Dir(), 0o700); err != nil {
		logger.Warn("prompt watcher disabled: %v", err)
		return nil
	}
	w, err := file.NewPromptWatcher(prompts.Dir(), prompts)
	if err != nil {
		logger.Warn("prompt watcher disabled: %v", err)
		return nil
	}
	a.onClose(w.Close)
	return []func(ctx context.Context){w.Run}
}

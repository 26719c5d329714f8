// Package app builds the dependency graph.
package app

import (
	"context"

	"github.com/smartshell-ai/smartshell/internal/application/doctor"
	"github.com/smartshell-ai/smartshell/internal/application/session"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/cache"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/cmdlog"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/config"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/platform"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/supervise"
	"github.com/smartshell-ai/smartshell/internal/infrastructure/translate"
	"github.com/smartshell-ai/smartshell/internal/pkg/filesystem"
	"github.com/smartshell-ai/smartshell/internal/pkg/logger"
	"github.com/smartshell-ai/smartshell/internal/ports"
)

// Container wires application services with infrastructure adapters. The
// interactive pieces (gate, clipboard, live output) are attached by the CLI
// layer after construction.
type Container struct {
	Session      *session.Service
	Doctor       *doctor.Service
	ConfigLoader *config.FileLoader
	CommandLog   ports.CommandLog
	HistoryIndex ports.HistoryIndex
	CacheStore   ports.CacheStore
	Supervisor   ports.Supervisor
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.New(verbose)

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	commandLog := cmdlog.NewFileLog(cfg.Log.Dir, cfg.GetLogRetentionDays())

	var index ports.HistoryIndex
	if cfg.Log.SQLiteIndex {
		sqlIndex, err := cmdlog.NewSQLiteIndex(filesystem.DefaultIndexPath())
		if err != nil {
			// The JSONL log stays authoritative; history queries just fall
			// back to scanning it.
			log.Warn("history index unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			index = sqlIndex
		}
	}

	cacheStore := cache.NewFileCache(filesystem.CacheDir(), cfg.CacheTTL(), cfg.GetCacheMaxEntries())
	translators := translate.NewFactory(log, cfg.Phrasebook.RulesFile, cfg.ShouldFallbackToPhrasebook())
	supervisor := supervise.New(log, cfg.GracePeriod(), cfg.OutputTailLines())
	collector := platform.NewCollector()

	sessionService := &session.Service{
		ConfigProvider: cfgLoader,
		Platform:       collector,
		Translators:    translators,
		Cache:          cacheStore,
		Supervisor:     supervisor,
		CommandLog:     commandLog,
		Index:          index,
		Logger:         log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Translators:    translators,
		CommandLog:     commandLog,
	}

	return &Container{
		Session:      sessionService,
		Doctor:       doctorService,
		ConfigLoader: cfgLoader,
		CommandLog:   commandLog,
		HistoryIndex: index,
		CacheStore:   cacheStore,
		Supervisor:   supervisor,
		Logger:       log,
	}, nil
}

// Package app assembles the bot: configuration, logging, the optional
// history database, the Telegram bot, and the blocking-question client.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"

	"github.com/agentloop/consult/internal/client"
	"github.com/agentloop/consult/internal/history"
	"github.com/agentloop/consult/internal/infra/config"
	"github.com/agentloop/consult/internal/infra/logger"
	"github.com/agentloop/consult/internal/middleware"
	"github.com/agentloop/consult/internal/poller"
)

// App owns the wired components for one process.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	Client *client.Client

	bot     *tele.Bot
	db      *pgxpool.Pool
	history *history.Service
}

// New loads configuration, connects the optional history database, and
// constructs the bot and client. Configuration problems are returned
// before any question could be dispatched.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("logger.New: %w", err)
	}

	a := &App{Config: cfg, Log: log}

	if cfg.Database.URL != "" {
		if err := a.initDatabase(context.Background()); err != nil {
			return nil, err
		}
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller.New(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}
	a.bot = bot

	if cfg.Debug {
		bot.Use(middleware.Logger(log))
	}
	bot.Use(
		middleware.AutoRespond(),
		middleware.Recover(log),
	)

	var rec client.Recorder
	if a.history != nil {
		rec = a.history
	}
	a.Client = client.New(bot, client.Config{
		ChatID:         cfg.Telegram.ChatID,
		DefaultTimeout: cfg.DefaultTimeout.AsDuration(),
	}, rec, log)

	return a, nil
}

// History returns the transcript service, or nil when no database is
// configured.
func (a *App) History() *history.Service {
	return a.history
}

// Start begins receiving Telegram updates.
func (a *App) Start() {
	a.Client.Start()
}

// Close stops the bot and releases the database pool.
func (a *App) Close() {
	if a.Client != nil {
		a.Client.Stop()
	}
	if a.db != nil {
		a.db.Close()
	}
	_ = a.Log.Sync()
}

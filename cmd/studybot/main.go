package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/playmixer/studybot/internal/adapters/api/telegram"
	"github.com/playmixer/studybot/internal/adapters/filestore"
	"github.com/playmixer/studybot/internal/adapters/logger"
	"github.com/playmixer/studybot/internal/adapters/store"
	"github.com/playmixer/studybot/internal/core/config"
	"github.com/playmixer/studybot/internal/core/studybot"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("failed initilize config: %w", err)
	}

	lgr, err := logger.New(cfg.LogLevel, logger.OutputPath(cfg.LogPath))
	if err != nil {
		return fmt.Errorf("failed initialize logger: %w", err)
	}

	storage, err := store.New(ctx, cfg.Store, lgr)
	if err != nil {
		return fmt.Errorf("failed initilize storage: %w", err)
	}

	files, err := filestore.New(cfg.Files, filestore.Logger(lgr))
	if err != nil {
		return fmt.Errorf("failed initialize file store: %w", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed initialize bot api: %w", err)
	}

	core := studybot.New(
		cfg.Bot,
		storage,
		studybot.Logger(lgr),
		studybot.Files(files),
		studybot.Notify(telegram.NewSender(botAPI)),
	)

	bot := telegram.New(cfg.Telegram, botAPI, core, telegram.Logger(lgr))

	if err := bot.Run(ctx); err != nil {
		return fmt.Errorf("stop bot, %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/playmixer/studybot/internal/adapters/api/telegram"
	"github.com/playmixer/studybot/internal/adapters/filestore"
	"github.com/playmixer/studybot/internal/adapters/store"
	"github.com/playmixer/studybot/internal/adapters/store/database"
	"github.com/playmixer/studybot/internal/core/studybot"
)

type Config struct {
	Telegram *telegram.Config
	Store    *store.Config
	Files    *filestore.Config
	Bot      *studybot.Config
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath  string `env:"LOG_PATH"`
}

func Init() (*Config, error) {
	cfg := &Config{
		Telegram: &telegram.Config{},
		Store: &store.Config{
			Database: &database.Config{},
		},
		Files: &filestore.Config{},
		Bot:   &studybot.Config{},
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed load enviorements from file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return cfg, fmt.Errorf("failed parse env: %w", err)
	}

	flag.StringVar(&cfg.Telegram.Token, "t", cfg.Telegram.Token, "telegram bot token")
	flag.StringVar(&cfg.Store.Database.DSN, "d", cfg.Store.Database.DSN, "database dsn")
	flag.Int64Var(&cfg.Bot.AdminID, "admin", cfg.Bot.AdminID, "administrator telegram id")
	flag.StringVar(&cfg.Files.Dir, "f", cfg.Files.Dir, "uploaded files directory")
	flag.Parse()

	return cfg, nil
}

package cli

import (
	"fmt"

	"mwork_admission/internal/app"
	"mwork_admission/internal/config"
	"mwork_admission/internal/logger"

	"gorm.io/gorm"
)

// openDB загружает конфиг так же, как сервер, и подключается к базе
func openDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

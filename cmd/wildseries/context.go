package main

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vnkhanh/wild-series-backend/config"
	"github.com/vnkhanh/wild-series-backend/logger"
)

const serviceName = "wildseries"

type commandContext struct {
	envFile *string

	once   sync.Once
	config *config.Config
	log    *zap.Logger
	err    error
}

func newCommandContext(envFile *string) *commandContext {
	return &commandContext{envFile: envFile}
}

// ensure loads the .env file, the configuration and the logger once.
func (c *commandContext) ensure() (*config.Config, *zap.Logger, error) {
	c.once.Do(func() {
		// Không có file .env thì dùng biến môi trường sẵn có
		envErr := godotenv.Load(*c.envFile)

		cfg := config.Load()
		log, err := logger.New(serviceName, cfg.Server.Env, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			c.err = fmt.Errorf("init logger: %w", err)
			return
		}
		if envErr != nil {
			log.Debug("no env file loaded", zap.String("path", *c.envFile))
		}
		c.config = cfg
		c.log = log
	})
	return c.config, c.log, c.err
}

func (c *commandContext) openDB() (*gorm.DB, error) {
	cfg, log, err := c.ensure()
	if err != nil {
		return nil, err
	}
	db, err := config.InitDB(cfg.Database, cfg.Server.Env)
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (c *commandContext) sync() {
	if c.log != nil {
		_ = c.log.Sync()
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shorts/internal/config"
	"shorts/internal/history"
	"shorts/internal/logging"
	"shorts/internal/services"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "Failed to load configuration", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = services.Wrap(services.ErrUsage, "cli", "log level", "Invalid --log-level", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "ensure directories", "Failed to create state directories", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	if cfg == nil {
		fallback := config.Default()
		return &fallback
	}
	return cfg
}

// baseLogger falls back to a no-op logger when the configured sink cannot be
// opened; logging must never block an export.
func (c *commandContext) baseLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// beginRun assigns a run identifier and returns a context and logger carrying
// it along with the manifest path.
func (c *commandContext) beginRun(cmd *cobra.Command, manifestPath, component string) (context.Context, *slog.Logger, string) {
	runID := uuid.NewString()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithManifest(ctx, manifestPath)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(c.baseLogger(), component))
	return ctx, logger, runID
}

// recordRun appends run to the history ledger when it is enabled. Failures
// are logged, never returned.
func (c *commandContext) recordRun(ctx context.Context, logger *slog.Logger, run *history.Run) {
	cfg := c.configValue()
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "history ledger unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, fmt.Sprintf("check permissions on %s or disable [history]", cfg.HistoryPath())),
			logging.String(logging.FieldImpact, "this run is not recorded"),
		)
		return
	}
	defer store.Close()
	if err := store.Record(ctx, run); err != nil {
		logging.WarnWithContext(logger, "failed to record run", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run is not recorded"),
		)
		return
	}
	logger.Debug("run recorded", logging.Args(logging.String("history", store.Path()))...)
}

// resolveLang applies the flag, then the configured default.
func (c *commandContext) resolveLang(flagValue string) string {
	if lang := strings.TrimSpace(flagValue); lang != "" {
		return lang
	}
	return c.configValue().Defaults.Lang
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

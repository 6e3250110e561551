package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDefaults() error {
	switch c.Defaults.Format {
	case "srt", "vtt", "both":
	default:
		return fmt.Errorf("defaults.format must be one of srt, vtt, both (got %q)", c.Defaults.Format)
	}
	name := c.Defaults.SubsDirName
	if name != filepath.Base(name) || name == "." || name == ".." {
		return errors.New("defaults.subs_dir_name must be a single directory name")
	}
	if strings.ContainsAny(c.Defaults.Lang, `/\ `) {
		return fmt.Errorf("defaults.lang %q must not contain path separators or spaces", c.Defaults.Lang)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}

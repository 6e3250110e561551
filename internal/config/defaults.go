package config

const (
	defaultConfigPath  = "~/.config/shorts/config.toml"
	defaultStateDir    = "~/.local/share/shorts"
	defaultLogDir      = "~/.local/share/shorts/logs"
	defaultLang        = "en"
	defaultFormat      = "both"
	defaultSubsDirName = "subs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Lang:        defaultLang,
			Format:      defaultFormat,
			SubsDirName: defaultSubsDirName,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

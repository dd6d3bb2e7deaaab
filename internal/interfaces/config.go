package interfaces

// Config represents the application configuration
type Config struct {
	ConfDir       string  `toml:"conf_dir"`
	TemplateDir   string  `toml:"template_dir"`
	CreateTimeout float64 `toml:"create_timeout"`
	Target        string  `toml:"target"`
	LogLevel      string  `toml:"log_level"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}

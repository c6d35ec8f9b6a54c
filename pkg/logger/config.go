package logger

// Config holds logger settings loaded from the environment.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"uploadslot"`
	// Level and Format override the environment defaults when set.
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// Options translates cfg into factory options. An invalid level is reported
// and the environment default is kept.
func (cfg Config) Options() ([]Option, error) {
	opts := []Option{WithEnvironment(cfg.Env, cfg.Service)}
	if cfg.Format != "" {
		opts = append(opts, WithFormat(Format(cfg.Format)))
	}
	if cfg.Level != "" {
		l, err := ParseLevel(cfg.Level)
		if err != nil {
			return opts, err
		}
		opts = append(opts, WithLevel(l))
	}
	return opts, nil
}

package spool

import "time"

// Config holds request runtime settings loaded from the environment.
type Config struct {
	Enabled bool `env:"UPLOADS_ENABLED" envDefault:"true"`
	// TempDir defaults to a subdirectory of os.TempDir().
	TempDir        string        `env:"UPLOAD_TEMP_DIR"`
	MaxFileSize    int64         `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"33554432"`
	RegistryTTL    time.Duration `env:"UPLOAD_REGISTRY_TTL" envDefault:"1h"`
	RegistryPrefix string        `env:"UPLOAD_REGISTRY_PREFIX" envDefault:"uploadslot:spool:"`
}

// Options returns the Spooler options derived from cfg.
func (cfg Config) Options() []Option {
	opts := []Option{WithMaxFileSize(cfg.MaxFileSize)}
	if cfg.TempDir != "" {
		opts = append(opts, WithDir(cfg.TempDir))
	}
	if !cfg.Enabled {
		opts = append(opts, WithUploadsDisabled())
	}
	return opts
}

// RedisOptions returns the RedisRegistry options derived from cfg.
func (cfg Config) RedisOptions() []RedisOption {
	return []RedisOption{WithKeyPrefix(cfg.RegistryPrefix), WithTTL(cfg.RegistryTTL)}
}

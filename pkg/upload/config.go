package upload

import "os"

// Config holds per-deployment slot settings loaded from the environment.
type Config struct {
	Dir               string      `env:"UPLOAD_DIR" envDefault:"MyUploads"`
	MaxSize           int64       `env:"UPLOAD_MAX_SIZE" envDefault:"2097152"`
	AllowedExtensions []string    `env:"UPLOAD_ALLOWED_EXTENSIONS" envSeparator:","`
	DirPerm           os.FileMode `env:"UPLOAD_DIR_PERM" envDefault:"0755"`
	Transliterate     bool        `env:"UPLOAD_TRANSLITERATE" envDefault:"false"`
}

// Options returns the construction-time options derived from cfg.
func (cfg Config) Options() []Option {
	return []Option{
		WithDirPerm(cfg.DirPerm),
		WithTransliteration(cfg.Transliterate),
	}
}

// Apply copies the directory, size limit and allowed extensions onto s.
func (cfg Config) Apply(s *Slot) *Slot {
	s.SetDir(cfg.Dir).SetMaxSize(cfg.MaxSize)
	if len(cfg.AllowedExtensions) > 0 {
		s.SetAllowed(cfg.AllowedExtensions...)
	}
	return s
}

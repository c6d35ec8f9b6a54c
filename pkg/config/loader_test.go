package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadslot/pkg/config"
)

type sampleConfig struct {
	Dir     string        `env:"DIR" envDefault:"MyUploads"`
	MaxSize int64         `env:"MAX_SIZE" envDefault:"2097152"`
	Exts    []string      `env:"EXTS" envSeparator:","`
	Perm    os.FileMode   `env:"PERM" envDefault:"0755"`
	TTL     time.Duration `env:"TTL" envDefault:"1h"`
	Enabled bool          `env:"ENABLED" envDefault:"true"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg sampleConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))

		assert.Equal(t, "MyUploads", cfg.Dir)
		assert.Equal(t, int64(2097152), cfg.MaxSize)
		assert.Nil(t, cfg.Exts)
		assert.Equal(t, os.FileMode(0o755), cfg.Perm)
		assert.Equal(t, time.Hour, cfg.TTL)
		assert.True(t, cfg.Enabled)
	})

	t.Run("values", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"DIR":      "uploads",
			"MAX_SIZE": "1024",
			"EXTS":     "png,jpg",
			"PERM":     "0700",
			"TTL":      "30s",
			"ENABLED":  "false",
		}))
		require.NoError(t, err)

		assert.Equal(t, "uploads", cfg.Dir)
		assert.Equal(t, int64(1024), cfg.MaxSize)
		assert.Equal(t, []string{"png", "jpg"}, cfg.Exts)
		assert.Equal(t, os.FileMode(0o700), cfg.Perm)
		assert.Equal(t, 30*time.Second, cfg.TTL)
		assert.False(t, cfg.Enabled)
	})

	t.Run("prefix", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg,
			config.WithPrefix("AVATAR_"),
			config.WithEnvironment(map[string]string{"AVATAR_DIR": "avatars", "DIR": "ignored"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "avatars", cfg.Dir)
	})

	t.Run("invalid file mode", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"PERM": "rwx"}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid number", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"MAX_SIZE": "big"}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("required", func(t *testing.T) {
		var cfg struct {
			Bucket string `env:"BUCKET"`
		}
		err := config.Load(&cfg, config.WithRequired(), config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *sampleConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		var cfg sampleConfig
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{"TTL": "soon"}))
	})
	assert.NotPanics(t, func() {
		var cfg sampleConfig
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	})
}

func TestLoadEnv(t *testing.T) {
	t.Cleanup(func() {
		_ = os.Unsetenv("CONFIG_TEST_FROM_FILE")
		_ = os.Unsetenv("CONFIG_TEST_MODE")
	})

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg struct {
		FromFile string      `env:"CONFIG_TEST_FROM_FILE"`
		Mode     os.FileMode `env:"CONFIG_TEST_MODE"`
	}
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.FromFile)
	assert.Equal(t, os.FileMode(0o700), cfg.Mode)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
}

// Package config loads application configuration from environment variables
// into tagged structs, using github.com/caarlos0/env/v11 for parsing and
// github.com/joho/godotenv for .env files.
//
//	var cfg upload.Config
//	config.MustLoad(&cfg)
//
// Every package that needs settings declares its own Config struct with `env`
// tags and defaults; the binaries load each one at startup. Load can be scoped
// with WithPrefix, or fed a fixed map with WithEnvironment, which keeps tests
// away from the process environment.
//
// Beyond the types supported by env, os.FileMode fields are parsed as octal so
// permissions can be written the usual way ("0755").
package config

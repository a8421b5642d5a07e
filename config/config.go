package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
)

// Config is the harness configuration. Environment variables set the
// defaults and command-line flags override them.
type Config struct {
	AssetsDir  string `env:"CUE_ASSETS_DIR" envDefault:"."`
	TracksDir  string `env:"CUE_TRACKS_DIR" envDefault:"prefabs"`
	Debug      bool   `env:"CUE_DEBUG"`
	Deathmatch string `env:"CUE_DEATHMATCH" envDefault:"tf_music_deathmatch"`
	SampleRate int    `env:"CUE_SAMPLE_RATE" envDefault:"44100"`
	Strict     bool   `env:"CUE_STRICT"`
	Watch      bool   `env:"CUE_WATCH"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment and then parses args as flags on top of it.
func Load(name string, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "directory sound assets are read from")
	fs.StringVar(&cfg.TracksDir, "tracks", cfg.TracksDir, "directory holding tracks/ and scripts/ overrides, empty for built-ins only")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log developer messages")
	fs.StringVar(&cfg.Deathmatch, "deathmatch", cfg.Deathmatch, "track started when a round starts")
	fs.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "audio sample rate")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject unknown layer and mood names")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload track definitions and scripts when they change")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.Deathmatch == "" {
		return fmt.Errorf("deathmatch track name is required")
	}
	if c.Watch && c.TracksDir == "" {
		return fmt.Errorf("watch needs a tracks directory")
	}
	return nil
}

package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AssetsDir != "." || cfg.TracksDir != "prefabs" || cfg.SampleRate != 44100 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Deathmatch != "tf_music_deathmatch" || cfg.Debug || cfg.Watch || cfg.Strict {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("CUE_ASSETS_DIR", "/srv/sound")
	t.Setenv("CUE_DEBUG", "true")
	t.Setenv("CUE_SAMPLE_RATE", "48000")

	cfg, err := Load("test", []string{"-rate", "22050", "-strict"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AssetsDir != "/srv/sound" || !cfg.Debug {
		t.Fatalf("expected env values, got %+v", cfg)
	}
	if cfg.SampleRate != 22050 || !cfg.Strict {
		t.Fatalf("expected flag values, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{"bad env", map[string]string{"CUE_SAMPLE_RATE": "fast"}, nil, "parse env:"},
		{"bad flag", nil, []string{"-nope"}, "parse flags:"},
		{"zero rate", nil, []string{"-rate", "0"}, "sample rate"},
		{"empty deathmatch", nil, []string{"-deathmatch", ""}, "deathmatch"},
		{"watch without dir", nil, []string{"-watch", "-tracks", ""}, "watch"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := Load("test", c.args)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 || cfg.MaxGuides != 4 || cfg.TextProbe != "Www" || cfg.FrameZBase != -100000 {
		t.Errorf("defaults = %+v", cfg)
	}

	opts := cfg.EngineOptions()
	if opts.HandleSize != 8 || opts.GuideThreshold != 5 || opts.RotationSnap != 15 {
		t.Errorf("EngineOptions() = %+v", opts)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("BOARD_PORT", "9090")
	t.Setenv("BOARD_MAX_ZOOM", "4")
	t.Setenv("BOARD_GUIDE_THRESHOLD", "3")
	t.Setenv("BOARD_TEXT_PROBE", "MM")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9090 || cfg.MaxZoom != 4 {
		t.Errorf("Port = %d MaxZoom = %v", cfg.Port, cfg.MaxZoom)
	}
	opts := cfg.EngineOptions()
	if opts.GuideThreshold != 3 || opts.TextProbe != "MM" {
		t.Errorf("EngineOptions() = %+v", opts)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"inverted zoom range": {"BOARD_MIN_ZOOM": "2", "BOARD_MAX_ZOOM": "1"},
		"zero min zoom":       {"BOARD_MIN_ZOOM": "0"},
		"non-numeric port":    {"BOARD_PORT": "eighty"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want an error")
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			c := &Config{LogLevel: in}
			if got := c.SlogLevel(); got != want {
				t.Errorf("SlogLevel() = %v, want %v", got, want)
			}
		})
	}
}

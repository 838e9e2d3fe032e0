package logging

import "testing"

func TestDefaultConfigByMode(t *testing.T) {
	cli := DefaultConfig(ModeCLI)
	if cli.Level == nil || *cli.Level != "error" {
		t.Fatalf("cli default level = %v, want error", cli.Level)
	}
	if cli.Sink == nil || Sink(*cli.Sink) != SinkStderr {
		t.Fatalf("cli default sink = %v, want stderr", cli.Sink)
	}

	engine := DefaultConfig(ModeEngine)
	if engine.Level == nil || *engine.Level != "info" {
		t.Fatalf("engine default level = %v, want info", engine.Level)
	}
	if engine.Sink == nil || Sink(*engine.Sink) != SinkFile {
		t.Fatalf("engine default sink = %v, want file", engine.Sink)
	}
	if engine.Format == nil || Format(*engine.Format) != FormatJSON {
		t.Fatalf("engine default format = %v, want json", engine.Format)
	}
}

func TestWithEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogSink, "none")
	t.Setenv(EnvLogMaxBackups, "9")
	t.Setenv(EnvLogCompress, "off")

	cfg := DefaultConfig(ModeCLI).WithEnv()
	if cfg.Level == nil || *cfg.Level != "debug" {
		t.Fatalf("level = %v, want debug", cfg.Level)
	}
	if cfg.Sink == nil || Sink(*cfg.Sink) != SinkNone {
		t.Fatalf("sink = %v, want none", cfg.Sink)
	}
	if cfg.MaxBackups == nil || *cfg.MaxBackups != 9 {
		t.Fatalf("max backups = %v, want 9", cfg.MaxBackups)
	}
	if cfg.Compress == nil || *cfg.Compress {
		t.Fatalf("compress = %v, want false", cfg.Compress)
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	bad := "sometimes"
	cfg := Config{Level: &bad}
	if _, err := cfg.Normalize(); err == nil {
		t.Fatalf("expected error for invalid level")
	}

	sink := " FILE "
	cfg = Config{Sink: &sink}
	normalized, err := cfg.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if normalized.Sink == nil || Sink(*normalized.Sink) != SinkFile {
		t.Fatalf("sink = %v, want file", normalized.Sink)
	}
}

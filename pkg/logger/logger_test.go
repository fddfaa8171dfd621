package logger

import "testing"

func TestInitAndLevelString(t *testing.T) {
	Init("debug", "development")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN", "development")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error", "production")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense", "development")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLoggingDoesNotPanic(t *testing.T) {
	Init("debug", "development")
	Debugf("debug %s", "msg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("error")
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	Sync()
}

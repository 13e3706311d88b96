package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestKeyValueFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With("group", "cn")

	log.Warn("discarding corrupt stats", "key", "cn-geo-regions-stats")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["group"] != "cn" || fields["key"] != "cn-geo-regions-stats" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %v", entries[0].Level)
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "geodrill.log")
	log, err := New("prod", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("session started", "group", "uk")
	log.Debug("hidden in prod")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "session started") || !strings.Contains(out, `"group":"uk"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden in prod") {
		t.Fatalf("debug entry should be filtered in prod mode")
	}
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Error("ignored", "k", 1)
	log.Sync()
}

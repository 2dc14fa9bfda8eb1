package config

import (
	"errors"
	"testing"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/dates"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppPort != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.AppPort)
	}
	if cfg.DateWindow != dates.DefaultWindow {
		t.Errorf("expected window %d, got %d", dates.DefaultWindow, cfg.DateWindow)
	}
	if cfg.MenuCacheTTL != 10*time.Minute {
		t.Errorf("expected 10m cache TTL, got %s", cfg.MenuCacheTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CUTOFF_TIME", "14:00")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("SCHEDULE_DAYS", "1110000")
	t.Setenv("DATE_WINDOW", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	calc, err := cfg.Calculator()
	if err != nil {
		t.Fatalf("Calculator: %v", err)
	}
	if calc.Cutoff.Hour != 14 {
		t.Errorf("expected cutoff hour 14, got %d", calc.Cutoff.Hour)
	}
	if calc.Window != 7 {
		t.Errorf("expected window 7, got %d", calc.Window)
	}
	if calc.Schedule.Len() != 7 {
		t.Errorf("expected cycle of 7, got %d", calc.Schedule.Len())
	}
}

func TestLoad_EmptyScheduleFailsFast(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCHEDULE_DAYS", " ")

	_, err := Load()
	if !errors.Is(err, dates.ErrEmptySchedule) {
		t.Errorf("expected ErrEmptySchedule, got %v", err)
	}
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ORDER_STORE", "mongo")

	if _, err := Load(); err == nil {
		t.Errorf("expected error for unknown ORDER_STORE")
	}
}

func TestLoad_FirestoreNeedsProject(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ORDER_STORE", "firestore")

	if _, err := Load(); err == nil {
		t.Errorf("expected error when FIREBASE_PROJECT_ID is missing")
	}
}

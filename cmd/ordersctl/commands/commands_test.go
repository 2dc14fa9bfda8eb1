package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavshah/sandwich-orders-api/pkg/config"
	"github.com/arnavshah/sandwich-orders-api/pkg/database"
)

func testConfig() *config.Config {
	return &config.Config{
		CutoffTime:      "14:00",
		Timezone:        "UTC",
		ScheduleStart:   "2024-09-02",
		ScheduleDays:    "1111100",
		DateWindow:      14,
		DateFormat:      "Jan 2",
		APIMasterSecret: "master",
	}
}

func run(t *testing.T, cmdArgs ...string) string {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	defer func() { cfg = nil }()

	var cmd = datesCmd()
	if cmdArgs[0] == "keygen" {
		cmd = keygenCmd()
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(cmdArgs[1:])
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s: %v", cmdArgs[0], err)
	}
	return out.String()
}

func TestDatesCmd(t *testing.T) {
	out := run(t, "dates", "--at", "2026-10-14T16:00", "--booked", "2026-10-16,2026-10-19", "--focus", "2026-10-19")

	if !strings.Contains(out, "from 2026-10-15") {
		t.Errorf("expected scan to start tomorrow:\n%s", out)
	}
	if strings.Contains(out, "2026-10-16") {
		t.Errorf("booked Friday should be excluded:\n%s", out)
	}
	if !strings.Contains(out, "2026-10-19  Oct 19") {
		t.Errorf("focused Monday should be included:\n%s", out)
	}
}

func TestKeygenCmd(t *testing.T) {
	out := run(t, "keygen", "fam1")
	if !strings.Contains(out, "fam1.") {
		t.Errorf("expected a key for fam1, got %q", out)
	}
	if !strings.Contains(out, "Not registered") {
		t.Errorf("expected a reminder to register the key, got %q", out)
	}
}

func TestKeygenCmd_Register(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	cfg = testConfig()
	cfg.DataPath = path

	out := run(t, "keygen", "fam1", "--register", "--rate-limit", "50")
	if !strings.Contains(out, "Registered as key") {
		t.Fatalf("expected registration, got %q", out)
	}

	db, err := database.Open(database.Options{DataPath: path})
	if err != nil {
		t.Fatal(err)
	}
	if sqlDB, err := db.DB(); err == nil {
		t.Cleanup(func() { sqlDB.Close() })
	}
	var rec database.APIKey
	if err := db.Where("name = ?", "fam1").First(&rec).Error; err != nil {
		t.Fatalf("key not stored: %v", err)
	}
	if rec.RateLimit != 50 || !strings.Contains(out, rec.Key) {
		t.Errorf("stored key does not match output: %+v", rec)
	}
}

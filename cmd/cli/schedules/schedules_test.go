package schedules

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/fleet-pm/internal/models"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func loginForTest(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FLEET_PM_API_URL", apiURL)
	if err := os.WriteFile(os.Getenv("HOME")+"/.fleetpm_token", []byte("test-token"), 0600); err != nil {
		t.Fatalf("write token: %v", err)
	}
}

func TestListSchedules_TableOutput(t *testing.T) {
	due := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	list := []models.MaintenanceSchedule{
		{ID: 1, AssetID: 10, Name: "oil change", IntervalType: models.IntervalMonthly,
			IntervalValue: 1, NextDueDate: due, IsActive: true},
		{ID: 2, AssetID: 11, Name: "brake inspection", IntervalType: models.IntervalQuarterly,
			IntervalValue: 1, NextDueDate: due.AddDate(0, 2, 0), IsActive: true},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedules" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(list)
	}))
	defer srv.Close()

	loginForTest(t, srv.URL)

	cmd := listSchedulesCmd()
	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, "oil change") || !strings.Contains(out, "brake inspection") {
		t.Fatalf("expected schedule names in output, got: %s", out)
	}
	if !strings.Contains(out, "2025-06-15") {
		t.Fatalf("expected next due date in output, got: %s", out)
	}
}

func TestPreview_TableOutput(t *testing.T) {
	occs := []models.Occurrence{
		{DueDate: time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC),
			LeadDate: time.Date(2025, time.July, 8, 0, 0, 0, 0, time.UTC)},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedules/3/occurrences" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("count"); got != "5" {
			t.Fatalf("unexpected count: %q", got)
		}
		_ = json.NewEncoder(w).Encode(occs)
	}))
	defer srv.Close()

	loginForTest(t, srv.URL)

	cmd := previewCmd()
	if err := cmd.Flags().Set("count", "5"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{"3"})
	})

	if !strings.Contains(out, "2025-07-15") || !strings.Contains(out, "2025-07-08") {
		t.Fatalf("expected due and lead dates in output, got: %s", out)
	}
}

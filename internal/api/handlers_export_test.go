package api

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/terraincognita07/goutly/internal/services"
)

func TestExportEndpoints(t *testing.T) {
	env := newTestEnv(t)
	cookie := registerTestUser(t, env.app, "export@example.com")
	mustCreateLog(t, env, cookie, "meal-1")

	response, body := doJSON(t, env.app, http.MethodGet, "/api/export/summary?from=2026-03-01&to=2026-03-31", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d, body %s", response.StatusCode, body)
	}
	summary := decodeJSON[services.ExportSummary](t, body)
	if summary.TotalEntries != 1 || !summary.HasData || summary.DateFrom != "2026-03-10" || summary.DateTo != "2026-03-10" || summary.TotalPurine != 40 {
		t.Fatalf("summary = %#v", summary)
	}

	response, body = doJSON(t, env.app, http.MethodGet, "/api/export/csv", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("csv status = %d, body %s", response.StatusCode, body)
	}
	if disposition := response.Header.Get("Content-Disposition"); !strings.Contains(disposition, "goutly-export-") {
		t.Fatalf("Content-Disposition = %q", disposition)
	}
	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 || strings.Join(records[0], ",") != strings.Join(services.ExportCSVHeaders, ",") {
		t.Fatalf("csv records = %#v", records)
	}
	if records[1][0] != "2026-03-10" || records[1][3] != "meal meal-1" || records[1][4] != "40" {
		t.Fatalf("csv row = %#v", records[1])
	}

	response, body = doJSON(t, env.app, http.MethodGet, "/api/export/json", cookie, nil)
	if response.StatusCode != http.StatusOK || !strings.Contains(string(body), `"entries"`) {
		t.Fatalf("json export = %d %s", response.StatusCode, body)
	}

	response, body = doJSON(t, env.app, http.MethodGet, "/api/export/csv?from=2026-03-10&to=2026-03-01", cookie, nil)
	if response.StatusCode != http.StatusBadRequest || readAPIError(t, body) != "error.invalid_range" {
		t.Fatalf("reversed range = %d %s, want 400", response.StatusCode, body)
	}
	response, body = doJSON(t, env.app, http.MethodGet, "/api/export/json?from=yesterday", cookie, nil)
	if response.StatusCode != http.StatusBadRequest || readAPIError(t, body) != "error.invalid_date" {
		t.Fatalf("invalid from = %d %s, want 400", response.StatusCode, body)
	}
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAnalysisCountsByKindAndOutcome(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveAnalysis("text", "success", 120*time.Millisecond)
	recorder.ObserveAnalysis("text", "success", 80*time.Millisecond)
	recorder.ObserveAnalysis("image", "malformed", time.Second)

	if got := testutil.ToFloat64(recorder.requests.WithLabelValues("text", "success")); got != 2 {
		t.Fatalf("text/success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(recorder.requests.WithLabelValues("image", "malformed")); got != 1 {
		t.Fatalf("image/malformed count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(recorder.duration); got != 2 {
		t.Fatalf("duration series = %d, want 2", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveAnalysis("compare", "fallback", 10*time.Millisecond)

	server := httptest.NewServer(recorder.Handler())
	defer server.Close()

	response, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	want := `goutly_analysis_requests_total{kind="compare",outcome="fallback"} 1`
	if !strings.Contains(string(body), want) {
		t.Fatalf("expected metrics body to contain %q", want)
	}
}

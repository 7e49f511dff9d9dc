package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestCollector_RecordUpstream(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstream("style_content", OutcomeSuccess, 120*time.Millisecond)
	c.RecordUpstream("style_content", OutcomeSuccess, 80*time.Millisecond)
	c.RecordUpstream("style_content", OutcomeError, time.Second)

	got := counterValue(t, reg, "stylesense_upstream_calls_total",
		map[string]string{"operation": "style_content", "outcome": OutcomeSuccess})
	if got != 2 {
		t.Errorf("success calls = %v, want 2", got)
	}
	got = counterValue(t, reg, "stylesense_upstream_calls_total",
		map[string]string{"operation": "style_content", "outcome": OutcomeError})
	if got != 1 {
		t.Errorf("error calls = %v, want 1", got)
	}
}

func TestCollector_RecordRequestAndDegraded(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodPost, "/login", http.StatusUnauthorized, 5*time.Millisecond)
	c.RecordDegraded("sustainability")

	if got := counterValue(t, reg, "stylesense_http_requests_total",
		map[string]string{"route": "/login", "status_code": "401"}); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := counterValue(t, reg, "stylesense_degraded_results_total",
		map[string]string{"operation": "sustainability"}); got != 1 {
		t.Errorf("degraded = %v, want 1", got)
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordDegraded("vision")

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), "stylesense_degraded_results_total") {
		t.Error("response should contain stylesense_degraded_results_total")
	}
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCountsOpsAndFailures(t *testing.T) {
	c := NewCollector("metrics-test-ops")
	defer c.Unregister()

	c.Observe("get", time.Now(), true)
	c.Observe("get", time.Now(), false)

	if got := testutil.ToFloat64(c.ops.WithLabelValues("get")); got != 2 {
		t.Fatalf("ops count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.failures.WithLabelValues("get")); got != 1 {
		t.Fatalf("failures count = %v, want 1", got)
	}
}

func TestObserveGlobSize(t *testing.T) {
	c := NewCollector("metrics-test-glob")
	defer c.Unregister()

	c.ObserveGlobSize(3)
	if n := testutil.CollectAndCount(c.globSize); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.Observe("get", time.Now(), true)
	c.ObserveGlobSize(1)
	c.Unregister()
}

func TestReopenDoesNotPanicOnDuplicateRegistration(t *testing.T) {
	c1 := NewCollector("metrics-test-reopen")
	c1.Unregister()
	c2 := NewCollector("metrics-test-reopen")
	defer c2.Unregister()
	c2.Observe("sync", time.Now(), true)
}

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	// Test run ID generation
	if c.GetRunID() == "" {
		t.Error("Expected non-empty run ID")
	}

	// Test config
	c.SetConfig("lexicon", "embedded")
	c.SetConfig("ruby", true)

	// Test stage tracking
	c.StartStage("annotate")
	time.Sleep(10 * time.Millisecond)
	c.IncrementCounter("lines", 2)
	c.IncrementCounter("spans", 5)
	c.EndStage("annotate")

	c.StartStage("render")
	c.IncrementCounter("lines", 2)
	c.EndStage("render")

	// Test finalize
	metrics := c.Finalize(2, 5)

	if metrics.RunID == "" {
		t.Error("Expected non-empty run ID in metrics")
	}

	if metrics.Totals.LinesProcessed != 2 {
		t.Errorf("Expected 2 lines, got %d", metrics.Totals.LinesProcessed)
	}

	if metrics.Totals.SpansEmitted != 5 {
		t.Errorf("Expected 5 spans, got %d", metrics.Totals.SpansEmitted)
	}

	if _, ok := metrics.Stages["annotate"]; !ok {
		t.Error("Expected annotate stage in metrics")
	}

	if _, ok := metrics.Stages["render"]; !ok {
		t.Error("Expected render stage in metrics")
	}

	annotateStage := metrics.Stages["annotate"]
	if annotateStage.Counters["spans"] != 5 {
		t.Errorf("Expected spans counter = 5, got %d", annotateStage.Counters["spans"])
	}

	if c.GetStageDuration("annotate") <= 0 {
		t.Error("Expected positive annotate stage duration")
	}
}

func TestReporter(t *testing.T) {
	// Create temp directory
	tmpDir, err := os.MkdirTemp("", "metrics-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	reporter := NewReporter(tmpDir)

	// Create test metrics
	c := NewCollector()
	c.SetConfig("lexicon", "embedded")
	c.StartStage("annotate")
	c.IncrementCounter("lines", 100)
	c.EndStage("annotate")
	metrics := c.Finalize(100, 250)

	// Test write
	if err := reporter.Write(metrics); err != nil {
		t.Fatalf("Failed to write metrics: %v", err)
	}

	// Verify files exist
	latestPath := filepath.Join(tmpDir, "metrics", "latest.json")
	if _, err := os.Stat(latestPath); os.IsNotExist(err) {
		t.Error("Expected latest.json to exist")
	}

	historyPath := filepath.Join(tmpDir, "metrics", "history.jsonl")
	if _, err := os.Stat(historyPath); os.IsNotExist(err) {
		t.Error("Expected history.jsonl to exist")
	}

	// Test read history
	runs, err := reporter.ReadHistory(10)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}

	if len(runs) != 1 {
		t.Errorf("Expected 1 run in history, got %d", len(runs))
	}

	// Test last run
	lastRun, err := reporter.GetLastRun()
	if err != nil {
		t.Fatalf("Failed to get last run: %v", err)
	}

	if lastRun.RunID != metrics.RunID {
		t.Errorf("Expected run ID %s, got %s", metrics.RunID, lastRun.RunID)
	}
}

func TestComparison(t *testing.T) {
	// Create two runs
	c1 := NewCollector()
	c1.SetConfig("test", true)
	metrics1 := c1.Finalize(1000, 10)
	metrics1.Totals.DurationMs = 1000
	metrics1.Totals.Throughput = 1000

	c2 := NewCollector()
	c2.SetConfig("test", true)
	metrics2 := c2.Finalize(1000, 10)
	metrics2.Totals.DurationMs = 500
	metrics2.Totals.Throughput = 2000

	// Compare
	comparison := CompareRuns(metrics2, metrics1)

	if comparison == nil {
		t.Fatal("Expected non-nil comparison")
	}

	if comparison.SpeedupFactor != 2.0 {
		t.Errorf("Expected 2x speedup, got %.2f", comparison.SpeedupFactor)
	}

	if comparison.TimeSavedMs != 500 {
		t.Errorf("Expected 500ms saved, got %d", comparison.TimeSavedMs)
	}

	// Test format
	formatted := FormatComparison(comparison)
	if formatted == "" {
		t.Error("Expected non-empty formatted comparison")
	}
}

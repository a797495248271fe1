package metrics_test

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gridpilot/bessim/core/metrics"
	_ "github.com/gridpilot/bessim/infra/metrics"
)

// Sink sections arrive either from the YAML run config or from JSON
// module blocks; both routes must end at the same registry.
func TestConfigDecodeYAML(t *testing.T) {
	data := `sinks:
  - type: nop
  - type: nop
`
	var cfg metrics.Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	s, err := metrics.NewSink(cfg.Sinks)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	multi, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("got %T, want *metrics.MultiSink", s)
	}
	if len(multi.Sinks) != 2 {
		t.Fatalf("fan-out width %d, want 2", len(multi.Sinks))
	}
	if err := multi.RecordStep(metrics.StepRecord{Step: 1}); err != nil {
		t.Fatalf("record through decoded sinks: %v", err)
	}
}

func TestConfigDecodeJSONUnknownType(t *testing.T) {
	data := `{"sinks":[{"type":"missing"}]}`
	var cfg metrics.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	_, err := metrics.NewSink(cfg.Sinks)
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Fatalf("error %q does not name the bad type", err)
	}
}

package config

import "testing"

func TestTelemetryConfigDefaults(t *testing.T) {
	cfg := TelemetryConfig{}
	cfg.SetDefaults()
	if cfg.MQTTClientID != "bessim" {
		t.Errorf("client id default: %q", cfg.MQTTClientID)
	}
	if cfg.MQTTTopic != "bessim" {
		t.Errorf("topic default: %q", cfg.MQTTTopic)
	}
	if cfg.WSAddr != ":8081" {
		t.Errorf("ws addr default: %q", cfg.WSAddr)
	}
}

func TestTelemetryConfigValidate(t *testing.T) {
	cfg := TelemetryConfig{MQTTEnabled: true}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when mqtt enabled without broker")
	}

	cfg = TelemetryConfig{MQTTEnabled: true, MQTTBroker: "tcp://localhost:1883"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg = TelemetryConfig{
		MQTTEnabled:    true,
		MQTTBroker:     "ssl://localhost:8883",
		MQTTUseTLS:     true,
		MQTTClientCert: "client.pem",
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when tls material is incomplete")
	}

	cfg.MQTTClientKey = "client.key"
	cfg.MQTTCABundle = "ca.pem"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error with full tls material: %v", err)
	}

	// Disabled outputs need no fields at all.
	if err := (TelemetryConfig{}).Validate(); err != nil {
		t.Errorf("unexpected error for disabled outputs: %v", err)
	}
}

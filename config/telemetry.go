package config

import "fmt"

// TelemetryConfig configures the optional live outputs: an MQTT stream of
// step and episode payloads and a websocket feed for dashboards. Both are
// off by default; the engine itself never touches them.
type TelemetryConfig struct {
	MQTTEnabled  bool   `json:"mqtt_enabled"`
	MQTTBroker   string `json:"mqtt_broker"`
	MQTTClientID string `json:"mqtt_client_id"`
	MQTTUsername string `json:"mqtt_username"`
	MQTTPassword string `json:"mqtt_password"`
	// MQTTTopic is the topic prefix; "/step" and "/episode" are appended.
	MQTTTopic string `json:"mqtt_topic"`
	MQTTQoS   byte   `json:"mqtt_qos"`

	MQTTUseTLS     bool   `json:"mqtt_use_tls"`
	MQTTClientCert string `json:"mqtt_client_cert"`
	MQTTClientKey  string `json:"mqtt_client_key"`
	MQTTCABundle   string `json:"mqtt_ca_bundle"`

	WSEnabled bool   `json:"ws_enabled"`
	WSAddr    string `json:"ws_addr"`
}

// SetDefaults applies fallback values for optional fields.
func (c *TelemetryConfig) SetDefaults() {
	if c.MQTTClientID == "" {
		c.MQTTClientID = "bessim"
	}
	if c.MQTTTopic == "" {
		c.MQTTTopic = "bessim"
	}
	if c.WSAddr == "" {
		c.WSAddr = ":8081"
	}
}

// Validate checks mandatory fields for the enabled outputs.
func (c TelemetryConfig) Validate() error {
	if c.MQTTEnabled && c.MQTTBroker == "" {
		return fmt.Errorf("mqtt_broker is required when mqtt_enabled")
	}
	if c.MQTTUseTLS && (c.MQTTClientCert == "" || c.MQTTClientKey == "" || c.MQTTCABundle == "") {
		return fmt.Errorf("mqtt tls requires client cert, key and ca bundle")
	}
	return nil
}

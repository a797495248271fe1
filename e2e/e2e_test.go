package e2e

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gridpilot/bessim/app"
	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/factory"
)

const (
	influxOrg    = "e2e_org"
	influxBucket = "e2e_bucket"
	influxToken  = "e2e-token"
)

// junitReport covers just enough of the JUnit XML schema for CI to
// pick up the suite results.
type junitReport struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name    string  `xml:"name,attr"`
	Failure *string `xml:"failure,omitempty"`
	Time    float64 `xml:"time,attr"`
}

func writeJUnit(path string, rep junitReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	return enc.Encode(rep)
}

// startInflux starts an InfluxDB 2.7 container pre-provisioned with the e2e
// org, bucket and token, and returns it along with the base URL.
func startInflux(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "e2e",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "e2e-password",
			"DOCKER_INFLUXDB_INIT_ORG":         influxOrg,
			"DOCKER_INFLUXDB_INIT_BUCKET":      influxBucket,
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": influxToken,
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start influx container: %v", err)
	}
	host, _ := cont.Host(ctx)
	port, _ := cont.MappedPort(ctx, "8086")
	return cont, fmt.Sprintf("http://%s:%s", host, port.Port())
}

// startMosquitto spins up a Mosquitto broker with anonymous access.
func startMosquitto(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		Cmd:          []string{"mosquitto", "-c", "/mosquitto-no-auth.conf"},
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start mosquitto: %v", err)
	}
	host, _ := cont.Host(ctx)
	port, _ := cont.MappedPort(ctx, "1883")
	return cont, fmt.Sprintf("tcp://%s:%s", host, port.Port())
}

// Test_E2E_RunTelemetry drives a full run against real backends: the influx
// sink writes per-step points into a containerized InfluxDB while the MQTT
// publisher streams the same steps through a containerized broker.
func Test_E2E_RunTelemetry(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skipf("docker not installed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	influxCont, influxURL := startInflux(ctx, t)
	if influxCont != nil {
		defer influxCont.Terminate(ctx) //nolint:errcheck
	}
	mqttCont, mqttURL := startMosquitto(ctx, t)
	if mqttCont != nil {
		defer mqttCont.Terminate(ctx) //nolint:errcheck
	}

	received := make(chan string, 64)
	subOpts := paho.NewClientOptions().AddBroker(mqttURL).SetClientID("bessim-e2e-sub")
	sub := paho.NewClient(subOpts)
	if token := sub.Connect(); token.Wait() && token.Error() != nil {
		t.Fatalf("subscriber connect: %v", token.Error())
	}
	defer sub.Disconnect(250)
	if token := sub.Subscribe("bessim-e2e/#", 1, func(_ paho.Client, m paho.Message) {
		received <- m.Topic()
	}); token.Wait() && token.Error() != nil {
		t.Fatalf("subscribe: %v", token.Error())
	}

	cfg := config.Default()
	cfg.Env.MaxSteps = 6
	cfg.Run.Episodes = 1
	cfg.Run.Policy = "tariff"
	cfg.Run.Seed = 1
	cfg.Metrics.Sinks = []factory.ModuleConfig{{
		Type: "influx",
		Conf: map[string]any{
			"url":    influxURL,
			"token":  influxToken,
			"org":    influxOrg,
			"bucket": influxBucket,
		},
	}}
	cfg.Telemetry.MQTTEnabled = true
	cfg.Telemetry.MQTTBroker = mqttURL
	cfg.Telemetry.MQTTClientID = "bessim-e2e"
	cfg.Telemetry.MQTTTopic = "bessim-e2e"
	cfg.Telemetry.MQTTQoS = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	svc, err := app.New(&cfg)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	result, err := svc.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if len(result.Episodes) != 1 {
		t.Fatalf("expected 1 episode, got %d", len(result.Episodes))
	}
	if result.Episodes[0].Steps != 6 {
		t.Fatalf("expected 6 steps, got %d", result.Episodes[0].Steps)
	}

	cli := NewInfluxClient(influxURL, influxOrg, influxToken)
	defer cli.Close()
	flux := fmt.Sprintf(`from(bucket:%q)
		|> range(start: 2020-01-01T00:00:00Z)
		|> filter(fn: (r) => r._measurement == "sim_step" and r._field == "reward")`, influxBucket)
	rows, err := cli.CountRows(ctx, flux)
	if err != nil {
		t.Fatalf("influx query: %v", err)
	}
	if rows != 6 {
		t.Fatalf("expected 6 step points in influx, got %d", rows)
	}

	steps, episodes := 0, 0
	deadline := time.After(15 * time.Second)
	for steps < 6 || episodes < 1 {
		select {
		case topic := <-received:
			switch topic {
			case "bessim-e2e/step":
				steps++
			case "bessim-e2e/episode":
				episodes++
			}
		case <-deadline:
			t.Fatalf("mqtt stream incomplete: %d step and %d episode messages", steps, episodes)
		}
	}

	dir := t.TempDir()
	rep := junitReport{Name: "e2e", Tests: 1, Cases: []junitTestCase{{Name: "Test_E2E_RunTelemetry", Time: 0}}}
	if err := writeJUnit(filepath.Join(dir, "e2e.xml"), rep); err != nil {
		t.Logf("write junit: %v", err)
	}
}

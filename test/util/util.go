// Package util holds helpers shared by the integration tests.
package util

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// MetricTimeout bounds how long tests wait for a metric to show up.
	MetricTimeout = 5 * time.Second

	pollInterval = 50 * time.Millisecond
)

// FreePort returns an unused TCP port on the loopback interface.
func FreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// WaitForMetric polls metricsURL until substr appears in the scrape
// output or ctx expires.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		page, err := scrape(ctx, metricsURL)
		if err == nil && strings.Contains(page, substr) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("metric %q not found: %w", substr, ctx.Err())
		case <-tick.C:
		}
	}
}

func scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

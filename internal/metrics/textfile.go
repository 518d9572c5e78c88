package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrNoCollector is returned when writing metrics from a nil Collector.
var ErrNoCollector = errors.New("metrics collector is not configured")

// WriteTextfile writes all metrics to path in the text exposition format,
// as read by the node exporter textfile collector. The file is replaced
// atomically.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return ErrNoCollector
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// SPDX-License-Identifier: MIT
package transport

import "github.com/worshipwaves/WDweb-sub000/internal/log"

var transportLog = log.Component("Transport")

// LoggingTransport implements Transport by logging frame summaries. It
// is the default sink when no preview feed is configured.
type LoggingTransport struct{}

var _ Transport = (*LoggingTransport)(nil)

// NewLoggingTransport returns a logging-only transport.
func NewLoggingTransport() *LoggingTransport {
	return &LoggingTransport{}
}

// Send logs a one-line frame summary. It never fails.
func (lt *LoggingTransport) Send(frame *PatternFrame) error {
	transportLog.Infof("frame %s: %s, %d sections, %d slots, maxAmplitude=%.3f",
		frame.RunID, frame.Shape, frame.Sections, len(frame.Polygons), frame.MaxAmplitude)
	return nil
}

// Close is a no-op.
func (lt *LoggingTransport) Close() error {
	return nil
}

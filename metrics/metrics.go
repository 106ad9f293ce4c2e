// Package metrics provides a minimal instrumentation interface with a no-op
// default and a Prometheus-backed implementation whose state is written as
// a text file at the end of a run.
package metrics

import "sync"

// Recorder defines the counters the event loops report to.
type Recorder interface {
	IncEvents(tool, sample string)
	IncSelected(tool, sample string)
	AddWeight(tool, sample string, w float64)
	ObserveFileSeconds(tool string, seconds float64)
}

type noopRecorder struct{}

func (noopRecorder) IncEvents(string, string)           {}
func (noopRecorder) IncSelected(string, string)         {}
func (noopRecorder) AddWeight(string, string, float64)  {}
func (noopRecorder) ObserveFileSeconds(string, float64) {}

var (
	recMu    sync.RWMutex
	recorder Recorder = noopRecorder{}
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	recorder = r
}

// Package metrics provides observability hooks for split runs.
//
// The splitter receives a Recorder through its Options and defaults to
// NoopRecorder, so no call site needs a nil check:
//
//	res, err := splitter.Split(lines, splitter.Options{Recorder: metrics.NoopRecorder{}})
//
// To collect metrics, swap in the Prometheus implementation and export the
// registry as a node_exporter textfile once the run is over:
//
//	reg := prometheus.NewRegistry()
//	res, err := splitter.Split(lines, splitter.Options{Recorder: metrics.NewPrometheusRecorder(reg)})
//	...
//	err = metrics.WriteTextfile(path, reg)
package metrics

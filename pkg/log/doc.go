// Package log is the logging seam between listbench's library code and
// whatever logger the caller runs.
//
// Library packages such as internal/bench log through [Logger] and never
// import zerolog directly. The CLI wraps its zerolog.Logger:
//
//	logger := log.NewZerologAdapter(zl)
//
// and tests, or embedders that want silence, pass:
//
//	logger := log.NewNoopLogger()
package log

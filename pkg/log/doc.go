// Package log provides a logging abstraction for framecast components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. Default implementations are provided for zerolog
// and a no-op logger for testing.
//
// The sender never logs while holding its pool or queue locks, so
// implementations are free to do slow I/O.
package log

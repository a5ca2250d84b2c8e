// Package testdoubles provides test doubles (spies) for the aliasing interfaces.
//
// This package contains spy implementations used to verify deprecation
// notifications without installing a real reporting backend:
//   - SinkSpy: captures Deprecation Events with per-category queries
//   - LoggerSpy: captures Logger calls for verifying LoggerSink behavior
//
// These test doubles enable exact assertions on how many notifications fire,
// in which category, and with which messages.
package testdoubles

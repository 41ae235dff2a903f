// Package mocks provides hand-rolled mock implementations of the
// project's interfaces for use in tests. Each mock exposes function
// fields so a test can script behavior per call, and records the
// arguments it was invoked with.
package mocks

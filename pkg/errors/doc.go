// Package errors provides custom error types for the provisioning entrypoint
// and the e2e harness.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌───────────────────────────┬──────────────────────────────────────────────┐
//	│ Error Type                │ Blast radius                                 │
//	├───────────────────────────┼──────────────────────────────────────────────┤
//	│ FatalStartupError         │ Container never starts the application       │
//	│ BootstrapError            │ Entire test session aborted                  │
//	│ FixtureError              │ Current test case only (tx rolled back)      │
//	│ InvalidVersionFormatError │ Whatever action depended on the comparison   │
//	└───────────────────────────┴──────────────────────────────────────────────┘
package errors

// Package api defines the core value types shared across the benchmark
// pipeline: questions, provider records, per-provider results, reports,
// and the typed query error model.
//
// The package has no dependencies on the pipeline stages; every stage
// consumes and produces these types.
package api

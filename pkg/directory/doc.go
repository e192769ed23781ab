// Package directory discovers the eligible provider set for one pipeline
// run. It fetches the provider listing, drops excluded identifiers, keeps
// only zero-cost providers, and derives each provider's output budget from
// its reported context size.
package directory

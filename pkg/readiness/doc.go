// Package readiness provides dependency readiness polling for deployments.
//
// A deployment step frequently has to wait for an externally managed service
// (a database, a cache, an HTTP application) to start accepting traffic before
// the next step can run. This package offers:
//
//   - A bounded, fixed-delay polling loop (Wait)
//   - Sequential multi-dependency coordination with hard/soft semantics (WaitForAll)
//   - Ready-made probes: TCP dial, HTTP GET, command execution, Postgres ping,
//     Redis ping
//
// Polling is deliberately non-adaptive: a fixed delay between a fixed number of
// attempts, which is the right shape for a one-shot deployment run.
package readiness

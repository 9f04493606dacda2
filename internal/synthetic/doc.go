// Package synthetic generates the deterministic market-data fixtures the
// harness feeds to downstream checks.
//
// Reproducibility is the whole contract: the same (seed, length, start)
// always yields the same series. Each call owns its own math/rand source,
// so concurrent generations never interfere and no process-wide random
// state is touched. The guarantee holds within Go's math/rand algorithm
// family only; ports to other runtimes with different PRNGs will produce
// different (but equally stable) values.
package synthetic

//go:build !txlin_singlethread

package txlin

// concurrencyEnabled reports the build-time concurrency mode. In the default
// build, Spawn runs callbacks on their own goroutine pinned to an OS thread,
// and the callback's parallel flag is true.
const concurrencyEnabled = true

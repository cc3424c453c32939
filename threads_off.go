//go:build txlin_singlethread

package txlin

// concurrencyEnabled reports the build-time concurrency mode. With the
// txlin_singlethread tag, Spawn invokes callbacks inline on the calling
// goroutine and the callback's parallel flag is false.
const concurrencyEnabled = false

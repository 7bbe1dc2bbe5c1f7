/*
Package timer provides ports.Scheduler implementations.

Real is backed by the runtime timers and is what the CLI and the HTTP server use.
Manual is a deterministic clock that only moves when Advance is called; tasks due
during an Advance run synchronously, in due order, on the caller's goroutine.
*/
package timer

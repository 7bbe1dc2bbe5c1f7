/*
Package observability provides tools for monitoring wizard sessions.

It turns controller lifecycle hooks into Prometheus metrics and structured log
records. Both are plain domain.LifecycleHooks values and can be merged.
*/
package observability

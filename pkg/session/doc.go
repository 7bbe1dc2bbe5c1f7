/*
Package session implements the in-memory registry of wizard sessions.

Each session is one runtime.Controller. The Manager assigns identifiers, expires
idle sessions after a configurable TTL and tears every evicted controller down so
no timer or generation outlives its session.
*/
package session

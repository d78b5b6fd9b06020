// Package session provides bounded per-session exchange history.
//
// Persistence model:
//   - Only completed (query, answer) pairs are stored. Tool blocks are transient.
//   - Each session keeps at most N exchanges; the oldest is evicted first.
package session

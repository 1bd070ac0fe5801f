// Package ambient holds the process-wide ambient cancellation context.
//
// The ambient context is a single slot holding "the currently active
// cancellation signal, if any." The guard attempt loop installs each
// attempt's context into the slot for the duration of the attempt, so
// utilities that were not handed a context explicitly -- a cancellable
// [Sleep], an outbound request through [Transport] -- can opt in and
// be cancelled with the enclosing timeout.
//
// [Enter] and its returned restore function give the slot save/restore
// semantics: nested scopes restore in reverse order and never leak
// their context into siblings or callers.
//
// # Limitation
//
// The slot is a single shared cell. Two goroutines that both install
// ambient contexts at the same time will each save and restore
// independently, and an opt-in read that races a sibling's install can
// observe the wrong context. The slot is intended for the pattern
// where one attempt's body owns it until the attempt resolves; prefer
// passing contexts explicitly whenever that is possible. The atomics
// here keep the race detector quiet, they do not remove the sharing
// hazard.
package ambient

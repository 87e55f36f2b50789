// Package state defines persistence-facing contracts for saving and loading
// dataset snapshots taken before markets are rewritten, plus a small archive
// helper that preserves the first snapshot seen for each reference.
//
// Responsibilities:
//   - Store[T] only loads/saves a single snapshot for a single Ref.
//   - Archive[T] records the pre-rebuild state of each dataset exactly once
//     per run, so callers can inspect or restore originals afterwards.
//   - The core gridmix package remains persistence-agnostic; all persistence
//     logic stays behind Store implementations supplied by consumers.
package state

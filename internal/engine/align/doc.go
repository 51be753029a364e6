// Package align provides an incremental edit-distance engine that scores a
// growing typed sequence against a fixed reference one rune at a time.
//
// # Overview
//
// The engine keeps a single dynamic-programming row over the reference. Each
// appended rune runs one Wagner–Fischer sweep over that row, so an append
// costs O(len(reference)) regardless of how much has already been typed.
//
// Two cost variants share the same sweep:
//
//   - EditDistance: classic Levenshtein. row[len(reference)] is the edit
//     distance between the typed text and the whole reference.
//   - TrackingAlignment: consuming a reference rune without a typed rune is
//     free. The final row then describes where the typed text currently
//     aligns inside the reference rather than how different the two are.
//
// # Undo
//
// Every CheckpointInterval appended runes the row is snapshotted. Undo drops
// the last rune, restores the nearest earlier snapshot and replays the few
// runes typed after it. The visible state after Undo is identical to the
// state before the undone Append.
//
// # Basic Usage
//
//	d := align.NewDistanceTracker("hello")
//	d.AppendString("hillo")
//	d.Distance() // 1
//	d.Undo()
//	d.Distance() // 2
//
//	p := align.NewPositionTracker("hello world")
//	p.AppendString("hello w")
//	p.Position(1) // 7
//
// # Thread Safety
//
// Engines are not safe for concurrent use. Runes must be delivered in the
// order they were produced, because Undo is only the inverse of the most
// recent Append.
package align

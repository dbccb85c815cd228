// Package token defines the syntax values produced by the reader.
// Invariants:
//   - Every variant is a concrete type implementing Token; *Cons is the only
//     variant with identity, all others are plain values.
//   - A proper list is a chain of *Cons ending in EmptyList; any other final
//     tail makes the chain a dotted list.
//   - Cons trees are strict trees: a node has exactly one parent, no cycles.
//   - ListStart, ListEnd and Dot are structural markers. They exist only
//     inside the reader and never appear in a finished result.
//   - Comment is a marker too, except at top level when the reader keeps
//     comments.
package token

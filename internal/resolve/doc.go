// Package resolve flattens `extends` inheritance of model and type entries.
//
// Resolution per section:
//  1. Entries are visited in declared order; the `type` section is resolved
//     before `model` so a model may inherit from a resolved type.
//  2. Visiting an entry marks it in progress, resolves its parent first and
//     then merges the parent into a copy of the entry.
//  3. Revisiting an entry that is still in progress is a cycle. The entry is
//     used unmerged and a cycle warning is recorded, so fields reachable only
//     through the cyclic edge never show up in the result.
//
// Merging keeps the entry's own columns first, in declared order, and
// appends parent columns whose names are not taken yet. Attributes the
// entry already defines are never overwritten by inherited ones.
package resolve

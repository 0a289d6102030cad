// Package models defines the persisted document of Bill Keeper.
//
// The whole application state is one Document: the user's name, the ordered
// list of bills, and a pointer to the most recent payment. It is stored as a
// single JSON value and always written back in full.
//
// # Invariants
//
//   - Bill names are non-empty and unique case-insensitively; the stored name
//     keeps the casing the user typed.
//   - A bill's LastPaidAmount and LastPaidDate are either both set or both empty.
//   - LastUpdated, when present, refers to a bill in the registry. Deleting
//     that bill clears it.
//
// Drafts are made with Document.Clone, which never shares memory with the
// source document.
package models

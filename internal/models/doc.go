// Package models defines the core domain models for the split ledger.
//
// # Models
//
//   - ExpenseRecord: a single shared expense with its split policy
//   - ParticipantShare / PayerShare: derived per-person shares (never persisted)
//   - Settlement: an explicit payment between two users offsetting debt
//   - Group: a reusable member list with split defaults
//   - NetBalance / SuggestedTransfer: computed balance views
//   - Scope: the closed user set balances are aggregated over
//
// # Design Principles
//
//  1. **Money is exact**: every monetary field is a decimal.Decimal in the
//     ledger currency; the minor-unit invariants cannot be kept with floats.
//  2. **Views are never stored**: shares, balances and transfers are always
//     recomputed from the current expense and settlement set, so editing an
//     expense never leaves a stale derived row behind.
//  3. **Avoid circular references**: relationships use ID strings, not
//     pointers.
//  4. **IDs are opaque**: users, groups and categories are identified by
//     strings assigned elsewhere (UUID format at the storage boundary).
package models

// Package engine implements the split ledger's pure computation core:
// share calculation, category allocation, balance aggregation, debt
// simplification and budget attribution. Every function is a
// deterministic fold over data the caller already fetched; nothing here
// performs I/O or mutates shared state.
package engine

import "errors"

// Validation failures from ComputeShares. The calculator fails closed:
// a wrong split silently corrupts every downstream balance, so no
// partial share set is ever returned alongside an error.
var (
	// ErrNoParticipants is returned when a splitting method other than
	// SplitNone is used with an empty participant list.
	ErrNoParticipants = errors.New("split requires at least one participant")

	// ErrInvalidSplitConfig is returned for negative weights, an empty
	// weight map on a percentage split, or an unknown split method.
	ErrInvalidSplitConfig = errors.New("invalid split configuration")

	// ErrUnknownParticipant is returned when a split weight references
	// a user who is neither a participant nor the payer.
	ErrUnknownParticipant = errors.New("split weight references unknown user")
)

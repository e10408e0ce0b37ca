// Package sponsor implements the sponsor crediting domain.
//
// The package holds the domain types (Sponsor, Gratitude,
// CommitRecord), the pluggable Describer strategy, and the crediting
// engine itself.
//
// Crediting Flow:
// 1. Credit opens a transaction and draws up to N sponsors with
//    remaining credit, in uniform random order.
// 2. Each drawn sponsor gets a gratitude event (one shared timestamp
//    per batch), the describer's callback runs on the same
//    transaction, and the sponsor's balance drops by one.
// 3. An empty draw resets the whole pool (current := level), commits
//    the reset, and retries exactly once.
// 4. An empty store resolves to Result.Empty - the "just me" outcome,
//    which is not an error.
//
// Selection and decrement always share one transaction, so the set of
// qualifying sponsors observed by the draw cannot be invalidated
// before their balances are decremented. The invariant
// 0 <= current <= level holds after every completed transaction.
package sponsor

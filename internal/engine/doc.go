// Package engine is the pure prioritization core.
//
// Allowed here:
// - completeness evaluation of the two estimate triads
// - the partitioned multi-criterion sequencer
// - WSJF rank assignment
// - the queueing-cost simulator and the optimal-vs-current comparator
//
// Not allowed here:
// - I/O, persistence, or mutation of inputs
// - anything nondeterministic; same snapshot in, same answer out
//
// Callers must feed the sequencer and the comparator the same item and
// ledger snapshot within one logical update, or the displayed order and
// the cost comparison can diverge.
package engine

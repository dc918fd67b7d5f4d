// Package batch drives classification runs over the configured source
// folders.
//
// Both pipelines share the same shape: discover units of work, drop the ones
// a previous run already handled, then feed the rest to a fixed pool of
// workers that each encode, classify, and route one unit at a time. The pool
// size bounds in-flight remote calls and the memory held by encoded photos;
// it is a rate-limit concession, not a CPU heuristic.
//
// Every unit walks Discovered -> (SkippedAlready | Dispatched) ->
// (Classified -> Routed) | Failed and never transitions back. Unit failures
// are contained: they are logged, counted, and the run continues. Only a
// missing credential or an unreadable source tree aborts a run.
//
// Resumability differs per pipeline. The sorter checks the destination
// folders for a same-named file, so an interrupted run re-does nothing that
// was already copied. The analyzer checks group names already present in the
// results store. Neither consults any other run state.
package batch

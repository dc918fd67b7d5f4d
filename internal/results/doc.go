// Package results persists classification outcomes as a single JSON array on
// disk.
//
// The file is the interchange format with the review dashboard, so it stays
// a human-readable array with two-space indentation. Every append is a
// read-modify-rewrite of the whole document; a process-local mutex plus a
// cross-process advisory lock serialize the window so parallel workers (or a
// second run) never lose an entry. Rewrites go through a temp file and
// rename so a crash mid-write cannot truncate the store.
//
// A store that fails to parse is reported as ErrCorrupt rather than being
// silently treated as empty; callers choose between aborting and
// quarantining the damaged file to proceed fresh.
package results

// Package review serves the human approval pass over classified photos. It
// layers mutable review state (status, task, importance, edited description)
// on top of the immutable analysis records and exposes it over a small JSON
// HTTP API plus a static HTML export.
package review

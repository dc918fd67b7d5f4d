// Package naming derives canonical group keys and human-readable task labels
// from raw photo filenames.
//
// Inspection exports name repeat captures of the same area with a leading
// marker, a trailing shot number, or a duplicate counter ("- Pool Area 2.jpg",
// "Pool Area (2).png"). Normalize strips all of that so photos of one area
// taken on different dates land in the same group regardless of folder.
//
// Normalization is a pure function of the filename. The lowercase key is used
// for grouping only; the case-preserved label is kept for display.
package naming

// Package media discovers inspection photos on disk and prepares them for
// transport to the vision API.
//
// Discovery walks the configured source directories in lexical order so
// repeat runs see files in the same sequence. Grouping collects photos whose
// normalized names match into a single PhotoGroup across folders, preserving
// discovery order within each group.
//
// Encoding produces base64 data URIs from the original bytes; images are not
// resized or recompressed. A size cap guards against payloads the remote API
// would reject anyway.
package media

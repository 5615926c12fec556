// Package input loads documents from disk and turns them into plain text.
//
// A Loader reads one file into memory, enforces a size cap, decodes the
// bytes to UTF-8 and, for HTML documents, extracts the visible text. The
// result is a Source that carries the text together with a SHA3-256 digest
// used by the history database to recognize a document it has seen before.
//
// Encoding detection is deliberately small:
//   - a UTF-8 or UTF-16 byte order mark wins
//   - otherwise valid UTF-8 is used as-is
//   - otherwise the bytes are treated as Windows-1252
package input

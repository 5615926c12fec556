// Package database provides SQLite-based storage for readscore.
//
// This package implements the HistoryDB, which stores every completed
// analysis as JSON together with the columns needed to list and compare
// them: document path, text digest, selector, timestamp and mean age.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode lets a history query run while a batch is saving
package database

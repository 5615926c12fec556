// Package main provides the entry point for the readscore CLI.
//
// readscore estimates how difficult an English text is to read. It computes
// the Automated Readability Index, Flesch–Kincaid, SMOG and Coleman–Liau
// scores and maps each to an approximate reader age.
//
// Usage:
//
//	readscore score <file> [ARI|FK|SMOG|CL|all]
//	readscore batch <file>...
//	readscore history --list-documents
//
// See --help for all available options.
package main

// main is the entry point for readscore.
func main() {
	Execute()
}

// Package model defines the core data structures used throughout readscore.
//
// This package contains the following main types:
//   - Metric: One of the four readability formulas (ARI, FK, SMOG, CL)
//   - Selector: A closed choice of a single metric or all four
//   - Counts: Aggregate text statistics that feed every formula
//   - Result and Summary: Scores and mapped reader ages
//   - Analysis: The full record of one analyzed document
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The readability core, the pipeline, the report writers and the
// history database all need these types, so centralizing them prevents import
// cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model

// Package pipeline provides a framework for executing analysis steps in sequence.
//
// A document goes through two stages: loading (read, decode, extract text)
// and analysis (tokenize, estimate syllables, score). Each stage is
// implemented as a Step that receives the current model.Analysis and can
// modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It provides consistent error handling and logging across steps
// 2. It supports cancellation via context between steps
// 3. Batch processing can reuse the same steps for every document
//
// The pipeline supports both single documents and batch processing with
// concurrency control using errgroup.
package pipeline

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/readscore/internal/model"
)

// collect runs a batch and returns its analyses in input order.
func collect(ctx context.Context, bp *BatchProcessor, paths []string) ([]*model.Analysis, error) {
	var mu sync.Mutex
	results := make([]*model.Analysis, len(paths))
	err := bp.ProcessBatchWithCallback(ctx, paths, func(analysis *model.Analysis, index int) {
		mu.Lock()
		results[index] = analysis
		mu.Unlock()
	})
	return results, err
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	factory := func() *Pipeline { return New() }

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(factory)
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
		if bp.selectorFor("any") != model.SelectAll {
			t.Error("expected default selector all")
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		if bp := NewBatchProcessor(factory, WithConcurrency(5)); bp.concurrency != 5 {
			t.Errorf("expected concurrency 5, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		if bp := NewBatchProcessor(factory, WithConcurrency(0)); bp.concurrency != DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
	})

	t.Run("applies selector options", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(factory, WithSelectorResolver(func(path string) model.Selector {
			if filepath.Ext(path) == ".html" {
				return model.SelectCL
			}
			return model.SelectARI
		}))
		if bp.selectorFor("a.html") != model.SelectCL || bp.selectorFor("a.txt") != model.SelectARI {
			t.Error("expected resolver to pick selector per path")
		}

		if bp := NewBatchProcessor(factory, WithSelectorResolver(nil)); bp.selectorFor("a.txt") != model.SelectAll {
			t.Error("expected nil resolver to keep selector all")
		}
	})
}

// TestBatchProcessorProcessBatchWithCallback tests batch processing.
func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	t.Run("processes all documents in order", func(t *testing.T) {
		t.Parallel()

		var processed atomic.Int32
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.Add(&mockStep{
				name: "counter",
				doFunc: func(_ context.Context, _ *model.Analysis) error {
					processed.Add(1)
					return nil
				},
			})
			return p
		})

		paths := []string{"first.txt", "second.txt", "third.txt"}
		results, err := collect(context.Background(), bp, paths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if processed.Load() != 3 {
			t.Errorf("expected 3 processed, got %d", processed.Load())
		}
		for i, result := range results {
			if result.Path != paths[i] {
				t.Errorf("result[%d]: got %q, expected %q", i, result.Path, paths[i])
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		var mu sync.Mutex

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.Add(&mockStep{
				name: "concurrent-counter",
				doFunc: func(_ context.Context, _ *model.Analysis) error {
					n := current.Add(1)
					mu.Lock()
					if n > peak.Load() {
						peak.Store(n)
					}
					mu.Unlock()

					time.Sleep(20 * time.Millisecond)
					current.Add(-1)
					return nil
				},
			})
			return p
		}, WithConcurrency(2))

		paths := make([]string, 8)
		for i := range paths {
			paths[i] = "doc.txt"
		}
		if _, err := collect(context.Background(), bp, paths); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("max concurrent was %d, expected <= 2", peak.Load())
		}
	})

	t.Run("continues after individual failure", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.Add(&mockStep{
				name: "sometimes-fails",
				doFunc: func(_ context.Context, analysis *model.Analysis) error {
					if analysis.Path == "broken.txt" {
						return errors.New("simulated failure")
					}
					return nil
				},
			})
			return p
		})

		results, err := collect(context.Background(), bp, []string{"a.txt", "broken.txt", "c.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].Failed() || results[2].Failed() {
			t.Error("expected healthy documents to succeed")
		}
		if !results[1].Failed() {
			t.Error("expected error in second result")
		}
	})

	t.Run("handles context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var started atomic.Int32

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.Add(&mockStep{
				name: "slow-step",
				doFunc: func(ctx context.Context, _ *model.Analysis) error {
					started.Add(1)
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(time.Second):
						return nil
					}
				},
			})
			return p
		}, WithConcurrency(2))

		paths := make([]string, 10)
		for i := range paths {
			paths[i] = "doc.txt"
		}

		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		if _, err := collect(ctx, bp, paths); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		//nolint:gosec // len(paths) is small, no overflow risk
		if started.Load() >= int32(len(paths)) {
			t.Error("expected some documents to not start due to cancellation")
		}
	})

	t.Run("scores real files end to end", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		good := filepath.Join(dir, "good.txt")
		empty := filepath.Join(dir, "empty.txt")
		if err := os.WriteFile(good, []byte("The cat sat. The dog ran."), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(empty, nil, 0o600); err != nil {
			t.Fatal(err)
		}

		bp := NewBatchProcessor(func() *Pipeline {
			return DefaultPipeline(nil)
		}, WithSelectorResolver(func(string) model.Selector { return model.SelectSMOG }))

		results, err := collect(context.Background(), bp, []string{good, empty, filepath.Join(dir, "missing.txt")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].Failed() {
			t.Fatalf("expected %s to succeed, got %s", good, results[0].ErrorMessage)
		}
		if len(results[0].Results) != 1 || results[0].Results[0].Metric != model.MetricSMOG {
			t.Errorf("expected one SMOG result, got %+v", results[0].Results)
		}
		if !results[1].Failed() {
			t.Error("expected empty document to fail")
		}
		if !results[2].Failed() {
			t.Error("expected missing document to fail")
		}
	})
}

package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/nao1215/readscore/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, analysis *model.Analysis) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, analysis *model.Analysis) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, analysis)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func newTestAnalysis() *model.Analysis {
	return model.NewAnalysis("essay.txt", model.SelectAll)
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if len(p.StepNames()) != 0 {
			t.Errorf("expected 0 steps, got %v", p.StepNames())
		}
		if p.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		if p := New(WithLogger(nil)); p.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestPipelineAdd tests adding steps to the pipeline.
func TestPipelineAdd(t *testing.T) {
	t.Parallel()

	p := New()
	p.Add(&mockStep{name: "first"})
	p.Add(&mockStep{name: "second"}, &mockStep{name: "third"})

	want := []string{"first", "second", "third"}
	if got := p.StepNames(); !slices.Equal(got, want) {
		t.Errorf("expected step names %v, got %v", want, got)
	}
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *model.Analysis) error {
					order = append(order, name)
					return nil
				},
			}
		}

		p := New()
		p.Add(record("load"), record("analyze"))

		analysis := newTestAnalysis()
		if err := p.Execute(context.Background(), analysis); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(order, []string{"load", "analyze"}) {
			t.Errorf("wrong execution order: %v", order)
		}
		if !slices.Equal(analysis.PerformedSteps, []string{"load", "analyze"}) {
			t.Errorf("expected performed steps to be recorded, got %v", analysis.PerformedSteps)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.Add(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *model.Analysis) error {
				return expectedErr
			},
		}, second)

		analysis := newTestAnalysis()
		err := p.Execute(context.Background(), analysis)
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if !analysis.Failed() || analysis.ErrorMessage != expectedErr.Error() {
			t.Errorf("expected error to be recorded, got %q", analysis.ErrorMessage)
		}
		if len(analysis.PerformedSteps) != 0 {
			t.Errorf("expected no performed steps, got %v", analysis.PerformedSteps)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.Add(step)

		analysis := newTestAnalysis()
		err := p.Execute(ctx, analysis)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if !analysis.Cancelled {
			t.Error("analysis.Cancelled should be true")
		}
	})
}

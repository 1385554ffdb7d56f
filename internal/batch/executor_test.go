package batch

import (
	"context"
	"reflect"
	"testing"

	"gopanel/domain/committee"
	"gopanel/internal"
	"gopanel/internal/aggregate"
	"gopanel/internal/testkit"
)

func newTestExecutor(maxConcurrent int64) *Executor {
	log := internal.NewLogger(internal.LogLevelError)
	return NewExecutor(aggregate.NewEngine(log), maxConcurrent, log)
}

func reviewFixture(seed int64) *committee.ReviewInput {
	kit := testkit.NewKit(seed)
	experts := kit.Committee(6)
	return kit.Input(committee.LevelL3, experts, testkit.SpreadScores(experts, []int{3, 4, 4, 2, 5, 3}))
}

func TestRun_PreservesInputOrder(t *testing.T) {
	x := newTestExecutor(2)
	inputs := []*committee.ReviewInput{
		reviewFixture(1), reviewFixture(2), reviewFixture(3), reviewFixture(4),
	}

	outcomes := x.Run(context.Background(), inputs)
	if len(outcomes) != len(inputs) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(inputs))
	}
	for i, o := range outcomes {
		if o.Index != i {
			t.Errorf("slot %d carries index %d", i, o.Index)
		}
		if o.Err != nil {
			t.Errorf("slot %d failed: %v", i, o.Err)
		}
		if o.Result == nil {
			t.Errorf("slot %d has no result", i)
		}
	}
}

// Batch results must match what the same inputs produce one at a time
func TestRun_MatchesSequential(t *testing.T) {
	log := internal.NewLogger(internal.LogLevelError)
	engine := aggregate.NewEngine(log)
	x := NewExecutor(engine, 4, log)

	inputs := []*committee.ReviewInput{
		reviewFixture(10), reviewFixture(11), reviewFixture(12),
	}

	outcomes := x.Run(context.Background(), inputs)
	for i, in := range inputs {
		want, err := engine.Aggregate(in)
		if err != nil {
			t.Fatalf("sequential %d: %v", i, err)
		}
		if !reflect.DeepEqual(want, outcomes[i].Result) {
			t.Errorf("slot %d differs from sequential run", i)
		}
	}
}

func TestRun_FailedReviewFillsOwnSlot(t *testing.T) {
	x := newTestExecutor(2)

	bad := reviewFixture(20)
	bad.Scores[0].RawScore = 9

	inputs := []*committee.ReviewInput{reviewFixture(21), bad, reviewFixture(22)}
	outcomes := x.Run(context.Background(), inputs)

	if outcomes[1].Err == nil || outcomes[1].Result != nil {
		t.Errorf("invalid review should fail its slot, got %+v", outcomes[1])
	}
	for _, i := range []int{0, 2} {
		if outcomes[i].Err != nil {
			t.Errorf("valid slot %d infected by neighbor failure: %v", i, outcomes[i].Err)
		}
	}
}

func TestRun_CancelledContext(t *testing.T) {
	x := newTestExecutor(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := x.Run(ctx, []*committee.ReviewInput{reviewFixture(30), reviewFixture(31)})
	for i, o := range outcomes {
		if o.Err == nil {
			t.Errorf("slot %d should carry the cancellation error", i)
		}
	}
}

func TestRun_EmptyBatch(t *testing.T) {
	outcomes := newTestExecutor(2).Run(context.Background(), nil)
	if len(outcomes) != 0 {
		t.Errorf("empty batch produced %d outcomes", len(outcomes))
	}
}

package service_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/mhollis/footprint/internal/domain"
	"github.com/mhollis/footprint/internal/service"
)

func TestNewFlowState(t *testing.T) {
	state := service.NewFlowState()

	if state.Step != 0 {
		t.Fatalf("expected step 0, got %d", state.Step)
	}
	if state.Submitting {
		t.Fatal("expected fresh state not to be submitting")
	}
	if _, ok := state.NumberValue("electricBill"); ok {
		t.Fatal("expected no value for an unanswered number question")
	}
}

func TestFlowState_CannotAdvanceWithoutValue(t *testing.T) {
	state := service.NewFlowState()

	if state.CanAdvance() {
		t.Fatal("expected number step without a value to block advancing")
	}
	if state.Next() {
		t.Fatal("expected Next to report not done")
	}
	if state.Step != 0 {
		t.Fatalf("expected step to stay at 0, got %d", state.Step)
	}
}

func TestFlowState_EnterAndAdvance(t *testing.T) {
	state := service.NewFlowState()

	state.Enter("120")
	v, ok := state.NumberValue("electricBill")
	if !ok || v != 120 {
		t.Fatalf("expected value 120, got %v (present=%v)", v, ok)
	}
	if !state.CanAdvance() {
		t.Fatal("expected valid value to allow advancing")
	}
	if state.Next() {
		t.Fatal("did not expect completion after one step")
	}
	if state.Step != 1 {
		t.Fatalf("expected step 1, got %d", state.Step)
	}
}

func TestFlowState_NegativeValueBlocks(t *testing.T) {
	state := service.NewFlowState()

	state.Enter("-5")
	v, ok := state.NumberValue("electricBill")
	if !ok || v != -5 {
		t.Fatalf("expected -5 to be recorded, got %v (present=%v)", v, ok)
	}
	if state.CanAdvance() {
		t.Fatal("expected negative value to block advancing")
	}
}

func TestFlowState_BadInputClears(t *testing.T) {
	state := service.NewFlowState()

	state.Enter("120")
	state.Enter("abc")
	if _, ok := state.NumberValue("electricBill"); ok {
		t.Fatal("expected non-numeric entry to clear the value")
	}

	state.Enter("120")
	state.Enter("")
	if _, ok := state.NumberValue("electricBill"); ok {
		t.Fatal("expected empty entry to clear the value")
	}
}

func TestFlowState_PreviousPreservesValue(t *testing.T) {
	state := service.NewFlowState()

	state.Enter("120")
	state.Next()
	state.Previous()

	if state.Step != 0 {
		t.Fatalf("expected step 0 after Previous, got %d", state.Step)
	}
	if v, ok := state.NumberValue("electricBill"); !ok || v != 120 {
		t.Fatalf("expected value to survive stepping back, got %v (present=%v)", v, ok)
	}

	// Stepping back off the first question is a no-op.
	state.Previous()
	if state.Step != 0 {
		t.Fatalf("expected step to stay at 0, got %d", state.Step)
	}
}

func TestFlowState_BooleanStepsAlwaysAdvance(t *testing.T) {
	state := completedNumberSteps(t)

	if state.Current().Type != service.QuestionBoolean {
		t.Fatalf("expected a boolean step at %d", state.Step)
	}
	if !state.CanAdvance() {
		t.Fatal("expected boolean step to allow advancing without an answer")
	}
	state.Enter("true")
	if !state.BoolValue("recycleNewspaper") {
		t.Fatal("expected recycleNewspaper to be recorded")
	}
}

func TestFlowState_FinalNextSubmits(t *testing.T) {
	state := completedNumberSteps(t)
	state.Enter("true") // recycleNewspaper
	state.Next()
	state.Enter("false") // recycleAluminum

	done := state.Next()
	if !done {
		t.Fatal("expected final Next to report completion")
	}
	if !state.Submitting {
		t.Fatal("expected submitting state after completion")
	}

	// Repeat advances and retreats are no-ops while submitting.
	if state.Next() {
		t.Fatal("expected repeat Next to be a no-op")
	}
	step := state.Step
	state.Previous()
	if state.Step != step {
		t.Fatal("expected Previous to be a no-op while submitting")
	}
}

func TestFlowState_Input(t *testing.T) {
	state := completedNumberSteps(t)
	state.Enter("true")
	state.Next()
	state.Next()

	in := state.Input()
	want := domain.CalculationInput{
		ElectricBill:     120,
		GasBill:          80,
		OilBill:          0,
		CarMileage:       12000,
		ShortFlights:     2,
		LongFlights:      1,
		RecycleNewspaper: true,
		RecycleAluminum:  false,
	}
	if in != want {
		t.Fatalf("assembled input mismatch:\n got %+v\nwant %+v", in, want)
	}
}

// completedNumberSteps walks a fresh flow through all six number
// questions with the worked-example answers, leaving it on the first
// boolean step.
func completedNumberSteps(t *testing.T) *service.FlowState {
	t.Helper()
	state := service.NewFlowState()
	for _, answer := range []float64{120, 80, 0, 12000, 2, 1} {
		state.Enter(strconv.FormatFloat(answer, 'f', -1, 64))
		if !state.CanAdvance() {
			t.Fatalf("step %d: expected %v to validate", state.Step, answer)
		}
		if state.Next() {
			t.Fatalf("step %d: unexpected completion", state.Step)
		}
	}
	return state
}

func TestFlowService_FullRun(t *testing.T) {
	db := newTestDB(t)
	flow := service.NewFlowService(db.FlowSessions())
	ctx := context.Background()
	sid := "run-1"

	if _, err := flow.Begin(ctx, sid); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	answers := []string{"120", "80", "0", "12000", "2", "1", "true", "false"}
	for i, answer := range answers {
		if _, err := flow.Enter(ctx, sid, answer); err != nil {
			t.Fatalf("Enter %d: %v", i, err)
		}
		state, done, err := flow.Advance(ctx, sid)
		if err != nil {
			t.Fatalf("Advance %d: %v", i, err)
		}
		if last := i == len(answers)-1; done != last {
			t.Fatalf("Advance %d: done=%v", i, done)
		}
		if i < len(answers)-1 && state.Step != i+1 {
			t.Fatalf("Advance %d: expected step %d, got %d", i, i+1, state.Step)
		}
	}

	result, err := flow.Result(ctx, sid)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if result.TotalFootprint != 37246 {
		t.Fatalf("expected total 37246, got %v", result.TotalFootprint)
	}
	if !result.Input.RecycleNewspaper || result.Input.RecycleAluminum {
		t.Fatalf("unexpected recycling answers: %+v", result.Input)
	}
}

func TestFlowService_StatePersistsAcrossLoads(t *testing.T) {
	db := newTestDB(t)
	flow := service.NewFlowService(db.FlowSessions())
	ctx := context.Background()
	sid := "run-2"

	if _, err := flow.Begin(ctx, sid); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := flow.Enter(ctx, sid, "95"); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if _, _, err := flow.Advance(ctx, sid); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	state, err := flow.State(ctx, sid)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.Step != 1 {
		t.Fatalf("expected step 1, got %d", state.Step)
	}
	if v, ok := state.NumberValue("electricBill"); !ok || v != 95 {
		t.Fatalf("expected stored answer 95, got %v (present=%v)", v, ok)
	}

	state, err = flow.Retreat(ctx, sid)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if state.Step != 0 {
		t.Fatalf("expected step 0 after retreat, got %d", state.Step)
	}
}

func TestFlowService_ResultMissing(t *testing.T) {
	db := newTestDB(t)
	flow := service.NewFlowService(db.FlowSessions())
	ctx := context.Background()

	if _, err := flow.Result(ctx, "unknown"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing session, got %v", err)
	}

	// A run in progress has no result yet.
	if _, err := flow.Begin(ctx, "run-3"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := flow.Result(ctx, "run-3"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before completion, got %v", err)
	}
}

func TestFlowService_BeginClearsResult(t *testing.T) {
	db := newTestDB(t)
	flow := service.NewFlowService(db.FlowSessions())
	ctx := context.Background()
	sid := "run-4"

	if _, err := flow.Begin(ctx, sid); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	for _, answer := range []string{"10", "0", "0", "0", "0", "0", "true", "true"} {
		if _, err := flow.Enter(ctx, sid, answer); err != nil {
			t.Fatalf("Enter: %v", err)
		}
		if _, _, err := flow.Advance(ctx, sid); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if _, err := flow.Result(ctx, sid); err != nil {
		t.Fatalf("Result after completion: %v", err)
	}

	// Restarting wipes the previous run's result.
	if _, err := flow.Begin(ctx, sid); err != nil {
		t.Fatalf("second Begin: %v", err)
	}
	if _, err := flow.Result(ctx, sid); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected result to be cleared by Begin, got %v", err)
	}
}

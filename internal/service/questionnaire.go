package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mhollis/footprint/internal/domain"
)

// QuestionType discriminates the two kinds of questionnaire steps.
type QuestionType string

const (
	QuestionNumber  QuestionType = "number"
	QuestionBoolean QuestionType = "boolean"
)

// Question describes one step of the questionnaire. Placeholder and Hint
// are only set for number questions; boolean questions carry neither.
type Question struct {
	ID          string
	Title       string
	Description string
	Type        QuestionType
	Placeholder string
	Hint        string
}

var questions = []Question{
	{
		ID:          "electricBill",
		Title:       "Monthly Electric Bill",
		Description: "Enter your average monthly electric bill in dollars",
		Type:        QuestionNumber,
		Placeholder: "e.g., 120",
		Hint:        "Did you know that the average household has $100-150/month?",
	},
	{
		ID:          "gasBill",
		Title:       "Monthly Gas Bill",
		Description: "Enter your average monthly gas bill in dollars",
		Type:        QuestionNumber,
		Placeholder: "e.g., 80",
		Hint:        "Did you know that the average household: $50-100/month?",
	},
	{
		ID:          "oilBill",
		Title:       "Monthly Oil Bill",
		Description: "Enter your average monthly oil bill in dollars (if applicable)",
		Type:        QuestionNumber,
		Placeholder: "e.g., 0",
		Hint:        "Enter 0 if you don't use oil heating",
	},
	{
		ID:          "carMileage",
		Title:       "Annual Car Mileage",
		Description: "Total miles driven per year across all vehicles",
		Type:        QuestionNumber,
		Placeholder: "e.g., 12000",
		Hint:        "Did you know that the average American has 10,000-15,000 miles/year?",
	},
	{
		ID:          "shortFlights",
		Title:       "Short Flights (≤4 hours)",
		Description: "Number of flights 4 hours or less in the past year",
		Type:        QuestionNumber,
		Placeholder: "e.g., 2",
		Hint:        "Domestic flights and regional travel",
	},
	{
		ID:          "longFlights",
		Title:       "Long Flights (>4 hours)",
		Description: "Number of flights over 4 hours in the past year",
		Type:        QuestionNumber,
		Placeholder: "e.g., 1",
		Hint:        "International flights!",
	},
	{
		ID:          "recycleNewspaper",
		Title:       "Newspaper Recycling",
		Description: "Do you recycle newspapers and paper products?",
		Type:        QuestionBoolean,
	},
	{
		ID:          "recycleAluminum",
		Title:       "Aluminum & Tin Recycling",
		Description: "Do you recycle aluminum cans and tin containers?",
		Type:        QuestionBoolean,
	},
}

// Questions returns the ordered questionnaire steps.
func Questions() []Question {
	return questions
}

// FlowState is the position and partial answer set of one questionnaire
// run. A number answer exists only once the user has entered a parseable
// value; key absence is the "no value" sentinel, distinct from zero.
// Booleans default to false and are always present implicitly.
type FlowState struct {
	Step       int                `json:"step"`
	Numbers    map[string]float64 `json:"numbers"`
	Booleans   map[string]bool    `json:"booleans"`
	Submitting bool               `json:"submitting"`
}

// NewFlowState returns a fresh flow at step 0 with cleared answers.
func NewFlowState() *FlowState {
	return &FlowState{
		Numbers:  make(map[string]float64),
		Booleans: make(map[string]bool),
	}
}

// Current returns the question for the current step.
func (f *FlowState) Current() Question {
	return questions[f.Step]
}

// StepCount returns the number of questionnaire steps.
func StepCount() int {
	return len(questions)
}

// NumberValue returns the entered value for a number question and
// whether one has been entered.
func (f *FlowState) NumberValue(id string) (float64, bool) {
	v, ok := f.Numbers[id]
	return v, ok
}

// BoolValue returns the answer for a boolean question.
func (f *FlowState) BoolValue(id string) bool {
	return f.Booleans[id]
}

// Enter records a raw answer for the current step. For number questions
// an empty or non-parseable value clears the answer back to "no value";
// a parseable value is recorded even when it fails validation, so the
// advance gate can reject it. Entering never validates by itself.
func (f *FlowState) Enter(raw string) {
	q := f.Current()
	switch q.Type {
	case QuestionBoolean:
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		f.Booleans[q.ID] = v
	default:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			delete(f.Numbers, q.ID)
			return
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			delete(f.Numbers, q.ID)
			return
		}
		f.Numbers[q.ID] = v
	}
}

// CanAdvance reports whether the current step passes validation: number
// questions need an entered, non-negative value; boolean questions
// always pass.
func (f *FlowState) CanAdvance() bool {
	if f.Submitting {
		return false
	}
	q := f.Current()
	if q.Type == QuestionBoolean {
		return true
	}
	v, ok := f.Numbers[q.ID]
	return ok && v >= 0
}

// Next advances to the following step if the current one validates.
// On the final step it enters the submitting state instead and reports
// completion; repeated calls while submitting are no-ops.
func (f *FlowState) Next() (done bool) {
	if !f.CanAdvance() {
		return false
	}
	if f.Step < len(questions)-1 {
		f.Step++
		return false
	}
	f.Submitting = true
	return true
}

// Previous steps back without clearing the value of the step being left.
func (f *FlowState) Previous() {
	if f.Step > 0 && !f.Submitting {
		f.Step--
	}
}

// Input assembles the collected answers into a calculation input.
// Unanswered numbers contribute zero.
func (f *FlowState) Input() domain.CalculationInput {
	return domain.CalculationInput{
		ElectricBill:     f.Numbers["electricBill"],
		GasBill:          f.Numbers["gasBill"],
		OilBill:          f.Numbers["oilBill"],
		CarMileage:       f.Numbers["carMileage"],
		ShortFlights:     int(f.Numbers["shortFlights"]),
		LongFlights:      int(f.Numbers["longFlights"]),
		RecycleNewspaper: f.Booleans["recycleNewspaper"],
		RecycleAluminum:  f.Booleans["recycleAluminum"],
	}
}

// FlowResult is the transient preview handed to the results view. It is
// session-scoped and not guaranteed to reach the persistence gateway.
type FlowResult struct {
	Input          domain.CalculationInput `json:"input"`
	TotalFootprint float64                 `json:"totalFootprint"`
}

// flowDoc is the serialized contents of one session slot.
type flowDoc struct {
	State  *FlowState  `json:"state,omitempty"`
	Result *FlowResult `json:"result,omitempty"`
}

const flowTTL = 2 * time.Hour

// FlowService drives questionnaire runs, persisting each run's state in
// the session store under the caller's session ID.
type FlowService struct {
	sessions domain.FlowSessionRepository
}

// NewFlowService creates a new FlowService.
func NewFlowService(sessions domain.FlowSessionRepository) *FlowService {
	return &FlowService{sessions: sessions}
}

// Begin starts a fresh run for sid, overwriting any previous state and
// clearing a previous result.
func (s *FlowService) Begin(ctx context.Context, sid string) (*FlowState, error) {
	state := NewFlowState()
	if err := s.save(ctx, sid, &flowDoc{State: state}); err != nil {
		return nil, err
	}
	return state, nil
}

// State returns the in-progress flow for sid, or ErrNotFound if none.
func (s *FlowService) State(ctx context.Context, sid string) (*FlowState, error) {
	doc, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if doc.State == nil {
		return nil, domain.ErrNotFound
	}
	return doc.State, nil
}

// Enter records a raw answer for the current step of sid's flow.
func (s *FlowService) Enter(ctx context.Context, sid, raw string) (*FlowState, error) {
	doc, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if doc.State == nil {
		return nil, domain.ErrNotFound
	}

	doc.State.Enter(raw)
	if err := s.save(ctx, sid, doc); err != nil {
		return nil, err
	}
	return doc.State, nil
}

// Advance moves sid's flow forward one step. On the final step it
// computes the footprint total and writes the preview result into the
// session slot; the flow then stays in the submitting state so a repeat
// advance cannot double-submit.
func (s *FlowService) Advance(ctx context.Context, sid string) (*FlowState, bool, error) {
	doc, err := s.load(ctx, sid)
	if err != nil {
		return nil, false, err
	}
	if doc.State == nil {
		return nil, false, domain.ErrNotFound
	}

	done := doc.State.Next()
	if done {
		in := doc.State.Input()
		doc.Result = &FlowResult{Input: in, TotalFootprint: EstimateFootprint(in)}
	}
	if err := s.save(ctx, sid, doc); err != nil {
		return nil, false, err
	}
	return doc.State, done, nil
}

// Retreat moves sid's flow back one step.
func (s *FlowService) Retreat(ctx context.Context, sid string) (*FlowState, error) {
	doc, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if doc.State == nil {
		return nil, domain.ErrNotFound
	}

	doc.State.Previous()
	if err := s.save(ctx, sid, doc); err != nil {
		return nil, err
	}
	return doc.State, nil
}

// Result returns the preview result for sid, or ErrNotFound when the
// slot is absent, expired or holds no completed run. The results view
// must render its empty state in that case rather than derive anything.
func (s *FlowService) Result(ctx context.Context, sid string) (*FlowResult, error) {
	doc, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if doc.Result == nil {
		return nil, domain.ErrNotFound
	}
	return doc.Result, nil
}

func (s *FlowService) load(ctx context.Context, sid string) (*flowDoc, error) {
	raw, err := s.sessions.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load flow session: %w", err)
	}

	doc := &flowDoc{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode flow session: %w", err)
	}
	return doc, nil
}

func (s *FlowService) save(ctx context.Context, sid string, doc *flowDoc) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode flow session: %w", err)
	}
	if err := s.sessions.Put(ctx, sid, raw, time.Now().UTC().Add(flowTTL)); err != nil {
		return fmt.Errorf("save flow session: %w", err)
	}
	return nil
}

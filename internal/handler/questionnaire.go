package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/mhollis/footprint/internal/domain"
	"github.com/mhollis/footprint/internal/service"
	"github.com/mhollis/footprint/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const flowCookieName = "flow_sid"

// QuestionnaireHandler drives the step-through calculator UI. Each
// browser gets a session cookie identifying its single flow slot; step
// changes are patched into the page over SSE.
type QuestionnaireHandler struct {
	flow         *service.FlowService
	cookieSecure bool
}

// NewQuestionnaireHandler creates a new QuestionnaireHandler.
func NewQuestionnaireHandler(flow *service.FlowService, cookieSecure bool) *QuestionnaireHandler {
	return &QuestionnaireHandler{flow: flow, cookieSecure: cookieSecure}
}

// HandleCalculator renders the questionnaire page, starting a fresh flow.
// A completed or abandoned run is never resumed.
func (h *QuestionnaireHandler) HandleCalculator(w http.ResponseWriter, r *http.Request) {
	sid := h.ensureSession(w, r)

	state, err := h.flow.Begin(r.Context(), sid)
	if err != nil {
		slog.Error("begin questionnaire flow", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.CalculatorPage(w, view.CalculatorData{
		PageData: pageData(r),
		Question: questionData(state),
	})
}

// HandleAnswer records the answer for the current step and re-renders
// the question card (button enablement may change).
func (h *QuestionnaireHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	raw := r.URL.Query().Get("value")
	if raw == "" {
		var signals struct {
			Value any `json:"value"`
		}
		if err := datastar.ReadSignals(r, &signals); err == nil && signals.Value != nil {
			raw = fmt.Sprint(signals.Value)
		}
	}

	state, err := h.flow.Enter(r.Context(), sid, raw)
	if err != nil {
		h.flowError(w, r, err, "record answer")
		return
	}

	h.patchQuestion(w, r, state)
}

// HandleNext advances the flow. The final advance computes the preview
// result, stores it in the session slot and redirects to the results view.
func (h *QuestionnaireHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state, done, err := h.flow.Advance(r.Context(), sid)
	if err != nil {
		h.flowError(w, r, err, "advance flow")
		return
	}

	if done {
		sse := datastar.NewSSE(w, r)
		sse.Redirect("/results")
		return
	}

	h.patchQuestion(w, r, state)
}

// HandlePrevious steps back one question, keeping entered values intact.
func (h *QuestionnaireHandler) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state, err := h.flow.Retreat(r.Context(), sid)
	if err != nil {
		h.flowError(w, r, err, "retreat flow")
		return
	}

	h.patchQuestion(w, r, state)
}

// HandleResults renders the preview result, or the empty state when no
// completed run exists for this session (e.g. direct navigation).
func (h *QuestionnaireHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(r)
	if !ok {
		view.ResultsEmptyPage(w, pageData(r))
		return
	}

	result, err := h.flow.Result(r.Context(), sid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			view.ResultsEmptyPage(w, pageData(r))
			return
		}
		slog.Error("load questionnaire result", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	breakdown := service.Breakdown(result.Input)
	maxValue := 0.0
	for _, item := range breakdown {
		if item.Value > maxValue {
			maxValue = item.Value
		}
	}

	category := service.Categorize(result.TotalFootprint)
	view.ResultsPage(w, view.ResultsData{
		PageData:    pageData(r),
		Total:       result.TotalFootprint,
		Category:    string(category),
		Description: categoryDescription(category),
		Breakdown:   breakdown,
		MaxValue:    maxValue,
	})
}

func categoryDescription(c service.Category) string {
	switch c {
	case service.CategoryVeryLow:
		return "Well done! Your footprint is very low."
	case service.CategoryIdeal:
		return "Good job! You're within the ideal range."
	case service.CategoryAverage:
		return "You're at the average level."
	default:
		return "Your footprint is very high... but there's room for improvement."
	}
}

// session returns the flow session ID from the cookie, if present.
func (h *QuestionnaireHandler) session(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(flowCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// ensureSession returns the flow session ID, issuing a cookie if needed.
func (h *QuestionnaireHandler) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if sid, ok := h.session(r); ok {
		return sid
	}

	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     flowCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

// patchQuestion re-renders the question card into the page over SSE.
func (h *QuestionnaireHandler) patchQuestion(w http.ResponseWriter, r *http.Request, state *service.FlowState) {
	var buf bytes.Buffer
	if err := view.QuestionFragment(&buf, questionData(state)); err != nil {
		slog.Error("render question fragment", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElements(buf.String())
}

// flowError answers a flow-service failure; a missing flow sends the
// browser back to a fresh questionnaire.
func (h *QuestionnaireHandler) flowError(w http.ResponseWriter, r *http.Request, err error, op string) {
	if errors.Is(err, domain.ErrNotFound) {
		sse := datastar.NewSSE(w, r)
		sse.Redirect("/calculator")
		return
	}
	slog.Error(op, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func questionData(state *service.FlowState) view.QuestionData {
	q := state.Current()

	value := ""
	if v, ok := state.NumberValue(q.ID); ok {
		value = strconv.FormatFloat(v, 'f', -1, 64)
	}

	return view.QuestionData{
		Question:   q,
		Step:       state.Step + 1,
		TotalSteps: service.StepCount(),
		Value:      value,
		BoolValue:  state.BoolValue(q.ID),
		CanAdvance: state.CanAdvance(),
		IsFirst:    state.Step == 0,
		IsLast:     state.Step == service.StepCount()-1,
		Submitting: state.Submitting,
	}
}

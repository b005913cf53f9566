// Package view renders the HTML pages and fragments of the questionnaire
// UI from embedded templates. Handlers pass plain data in; views know
// nothing about services or storage.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/mhollis/footprint/internal/service"
)

//go:embed templates/*.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"lbs": func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	},
	"pct": func(v, max float64) float64 {
		if max <= 0 {
			return 0
		}
		return v / max * 100
	},
	"stepPct": func(step, total int) float64 {
		if total <= 0 {
			return 0
		}
		return float64(step) / float64(total) * 100
	},
}

func mustParse(page string, extra ...string) *template.Template {
	paths := append([]string{"templates/base.tmpl", "templates/" + page}, extra...)
	return template.Must(template.New("base.tmpl").Funcs(funcs).ParseFS(files, paths...))
}

var (
	homeTmpl       = mustParse("home.tmpl")
	calculatorTmpl = mustParse("calculator.tmpl", "templates/question.tmpl")
	resultsTmpl    = mustParse("results.tmpl")
	resultsEmpty   = mustParse("results_empty.tmpl")
	learnTmpl      = mustParse("learn.tmpl")
	tipsTmpl       = mustParse("tips.tmpl")

	questionTmpl = template.Must(template.New("question.tmpl").Funcs(funcs).ParseFS(files, "templates/question.tmpl"))
)

// PageData carries fields shared by every page.
type PageData struct {
	Username string // empty when not logged in
}

// QuestionData renders one questionnaire step.
type QuestionData struct {
	Question   service.Question
	Step       int // 1-based
	TotalSteps int
	Value      string // entered number, "" when no value yet
	BoolValue  bool
	CanAdvance bool
	IsFirst    bool
	IsLast     bool
	Submitting bool
}

// CalculatorData renders the questionnaire page.
type CalculatorData struct {
	PageData
	Question QuestionData
}

// ResultsData renders the results page.
type ResultsData struct {
	PageData
	Total       float64
	Category    string
	Description string
	Breakdown   []service.BreakdownItem
	MaxValue    float64
}

func HomePage(w io.Writer, data PageData) error {
	return homeTmpl.ExecuteTemplate(w, "base.tmpl", data)
}

func CalculatorPage(w io.Writer, data CalculatorData) error {
	return calculatorTmpl.ExecuteTemplate(w, "base.tmpl", data)
}

// QuestionFragment renders the question card alone, for SSE patching.
func QuestionFragment(w io.Writer, data QuestionData) error {
	return questionTmpl.ExecuteTemplate(w, "question", data)
}

func ResultsPage(w io.Writer, data ResultsData) error {
	return resultsTmpl.ExecuteTemplate(w, "base.tmpl", data)
}

func ResultsEmptyPage(w io.Writer, data PageData) error {
	return resultsEmpty.ExecuteTemplate(w, "base.tmpl", data)
}

func LearnPage(w io.Writer, data PageData) error {
	return learnTmpl.ExecuteTemplate(w, "base.tmpl", data)
}

func TipsPage(w io.Writer, data PageData) error {
	return tipsTmpl.ExecuteTemplate(w, "base.tmpl", data)
}

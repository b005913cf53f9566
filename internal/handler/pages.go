package handler

import (
	"net/http"

	"github.com/mhollis/footprint/internal/view"
)

// pageData builds the shared page chrome data from the request context.
func pageData(r *http.Request) view.PageData {
	data := view.PageData{}
	if user := UserFromContext(r.Context()); user != nil {
		data.Username = user.Username
	}
	return data
}

// HandleHome renders the landing page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	view.HomePage(w, pageData(r))
}

// HandleLearn renders the education page.
func HandleLearn(w http.ResponseWriter, r *http.Request) {
	view.LearnPage(w, pageData(r))
}

// HandleTips renders the tips page.
func HandleTips(w http.ResponseWriter, r *http.Request) {
	view.TipsPage(w, pageData(r))
}

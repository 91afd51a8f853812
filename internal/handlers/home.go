package handlers

import "net/http"

// Home sends visitors to the bar book or to the sign-in page.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if ActiveSession(r) {
		redirect(w, r, "/app")
		return
	}
	redirect(w, r, "/login")
}

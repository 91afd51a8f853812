package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	applog "mixup/internal/log"
	"mixup/internal/views/pages"
	"mixup/models"
)

const minPasswordLength = 8

// Login renders the sign-in form and processes submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirect(w, r, "/app")
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, http.StatusOK, message, "")
	case http.MethodPost:
		if !accountsAvailable(w, r) {
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			renderLogin(w, r, http.StatusOK, "Email and password are required.", email)
			return
		}

		user, message := signIn(r, email, password)
		if user == nil {
			applog.Debug(r.Context(), "sign-in refused", "email", models.NormalizeEmail(email))
			renderLogin(w, r, http.StatusOK, message, email)
			return
		}

		applog.Info(r.Context(), "bartender signed in", "userID", user.ID)
		redirect(w, r, "/app")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Signup renders the account form and registers new bartenders.
func Signup(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling signup request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirect(w, r, "/app")
			return
		}
		renderSignup(w, r, signupForm{}, "")
	case http.MethodPost:
		if !accountsAvailable(w, r) {
			return
		}
		form := signupForm{
			Name:     strings.TrimSpace(r.PostFormValue("name")),
			Email:    strings.TrimSpace(r.PostFormValue("email")),
			Password: r.PostFormValue("password"),
			Confirm:  r.PostFormValue("confirm_password"),
		}
		if problem := form.problem(); problem != "" {
			renderSignup(w, r, form, problem)
			return
		}

		_, err := findUserByEmail(r, form.Email)
		switch {
		case err == nil:
			renderSignup(w, r, form, "An account with that email already exists.")
			return
		case !errors.Is(err, gorm.ErrRecordNotFound):
			applog.Error(r.Context(), "failed to check existing user", "error", err)
			renderSignup(w, r, form, "We couldn't create your account right now. Please try again.")
			return
		}

		user, err := createUser(r, form.Email, form.Name, form.Password)
		if err != nil {
			applog.Error(r.Context(), "failed to create user", "error", err)
			renderSignup(w, r, form, "We couldn't create your account right now. Please try again.")
			return
		}
		if err := establishSession(r, user); err != nil {
			applog.Error(r.Context(), "failed to establish session after signup", "error", err)
			renderSignup(w, r, form, "We couldn't sign you in after creating your account. Please try again.")
			return
		}

		applog.Info(r.Context(), "bartender registered", "userID", user.ID)
		redirect(w, r, "/app")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type signupForm struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// problem returns the first user-facing complaint about the form, or "".
func (f signupForm) problem() string {
	switch {
	case f.Email == "" || !strings.Contains(f.Email, "@"):
		return "Please provide a valid email address."
	case len(f.Password) < minPasswordLength:
		return "Password must be at least 8 characters long."
	case f.Password != f.Confirm:
		return "Passwords do not match."
	}
	return ""
}

// accountsAvailable parses the form and reports whether sessions and the
// user table can be reached. It writes the error response when they cannot.
func accountsAvailable(w http.ResponseWriter, r *http.Request) bool {
	if sessionManager == nil || database == nil {
		applog.Debug(r.Context(), "account dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
		http.Error(w, "accounts not available", http.StatusServiceUnavailable)
		return false
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}

func renderLogin(w http.ResponseWriter, r *http.Request, status int, message, email string) {
	renderPage(w, r, status, pages.Login(message, email), pages.LoginPartial(message, email))
}

func renderSignup(w http.ResponseWriter, r *http.Request, form signupForm, message string) {
	renderPage(w, r, http.StatusOK,
		pages.Signup(message, form.Name, form.Email),
		pages.SignupPartial(message, form.Name, form.Email))
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mixup/internal/catalog"
	applog "mixup/internal/log"
	"mixup/models"
)

const (
	sessionAuthenticatedKey = "auth:authenticated"
	sessionLoginMessageKey  = "auth:message"
	sessionUserIDKey        = "auth:user:id"
	sessionUserEmailKey     = "auth:user:email"
	sessionUserNameKey      = "auth:user:name"
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	catalogWorkers = catalog.DefaultWorkers
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	database = db
}

// ConfigureCatalog sets how many drinks the dashboard composes in parallel.
func ConfigureCatalog(workers int) {
	if workers <= 0 {
		workers = catalog.DefaultWorkers
	}
	catalogWorkers = workers
}

func createUser(r *http.Request, email, name, password string) (*models.User, error) {
	if database == nil {
		return nil, gorm.ErrInvalidDB
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        models.NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashed),
	}

	if err := database.WithContext(r.Context()).Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func findUserByEmail(r *http.Request, email string) (*models.User, error) {
	if database == nil {
		return nil, gorm.ErrInvalidDB
	}

	user := &models.User{}
	err := database.WithContext(r.Context()).Where("lower(email) = ?", models.NormalizeEmail(email)).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

const signInFailedMessage = "We were unable to sign you in. Please try again."

// signIn checks the credentials and opens a session. On failure it returns
// the message to show on the login form.
func signIn(r *http.Request, email, password string) (*models.User, string) {
	user, err := findUserByEmail(r, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, "Invalid email or password. Please try again."
	case err != nil:
		applog.Error(r.Context(), "failed to load user during login", "error", err)
		return nil, signInFailedMessage
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "Invalid email or password. Please try again."
	}

	if err := establishSession(r, user); err != nil {
		applog.Error(r.Context(), "failed to establish session", "error", err)
		return nil, signInFailedMessage
	}
	return user, ""
}

func establishSession(r *http.Request, user *models.User) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}
	if err := sessionManager.RenewToken(r.Context()); err != nil {
		return err
	}
	sessionManager.Put(r.Context(), sessionAuthenticatedKey, true)
	sessionManager.Put(r.Context(), sessionUserIDKey, int(user.ID))
	sessionManager.Put(r.Context(), sessionUserEmailKey, user.Email)
	sessionManager.Put(r.Context(), sessionUserNameKey, user.DisplayName())
	return nil
}

// RequireAuthentication ensures the user has an active session before
// accessing the resource. API clients get a JSON 401; browsers are sent to
// the login page.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActiveSession(r) {
			next.ServeHTTP(w, r)
			return
		}
		if wantsJSON(r) {
			applog.Debug(r.Context(), "rejecting anonymous api request", "path", r.URL.Path)
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		redirect(w, r, "/login")
	})
}

// Logout destroys the current session and sends the user back to the
// login screen with a notice.
func Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		} else {
			sessionManager.Put(r.Context(), sessionLoginMessageKey, "You have been signed out.")
		}
	}

	redirect(w, r, "/login")
}

// redirect issues a 303, using HX-Redirect so htmx swaps the whole page.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/app/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// ActiveSession returns true when the current request has an authenticated session.
func ActiveSession(r *http.Request) bool {
	if sessionManager == nil {
		return false
	}
	return sessionManager.GetBool(r.Context(), sessionAuthenticatedKey) && sessionManager.GetInt(r.Context(), sessionUserIDKey) > 0
}

func currentUserID(r *http.Request) (uint, bool) {
	if sessionManager == nil {
		return 0, false
	}
	id := sessionManager.GetInt(r.Context(), sessionUserIDKey)
	if id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func currentUserName(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	if name := sessionManager.GetString(r.Context(), sessionUserNameKey); name != "" {
		return name
	}
	return sessionManager.GetString(r.Context(), sessionUserEmailKey)
}

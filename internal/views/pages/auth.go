package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"mixup/internal/views/layout"
)

// Login renders the sign-in page.
func Login(message, email string) templ.Component {
	return layout.Layout("Sign in", LoginPartial(message, email), false)
}

// LoginPartial renders the sign-in form for HTMX swaps.
func LoginPartial(message, email string) templ.Component {
	return authForm("/login", "Sign in", message, email, nil, false)
}

// Signup renders the account creation page.
func Signup(message, name, email string) templ.Component {
	return layout.Layout("Create account", SignupPartial(message, name, email), false)
}

// SignupPartial renders the account creation form for HTMX swaps.
func SignupPartial(message, name, email string) templ.Component {
	nameField := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<label>Name <input type="text" name="name" value="%s" autocomplete="name"></label>`, templ.EscapeString(name))
		return err
	})
	return authForm("/signup", "Create account", message, email, nameField, true)
}

func authForm(action, title, message, email string, extra templ.Component, confirm bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<main id="auth"><h1>%s</h1>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="auth-message" role="alert">%s</p>`, templ.EscapeString(message)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" hx-post="%s" hx-target="#auth" hx-swap="outerHTML">`,
			action, action); err != nil {
			return err
		}
		if extra != nil {
			if err := extra.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<label>Email <input type="email" name="email" value="%s" required></label><label>Password <input type="password" name="password" required></label>`,
			templ.EscapeString(email)); err != nil {
			return err
		}
		if confirm {
			if _, err := io.WriteString(w, `<label>Confirm password <input type="password" name="confirm_password" required></label>`); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<button type="submit">%s</button></form></main>`, templ.EscapeString(title))
		return err
	})
}

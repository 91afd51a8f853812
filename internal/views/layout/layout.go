package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// Layout wraps content in the application shell. The navigation bar is only
// rendered for signed-in users.
func Layout(title string, content templ.Component, authenticated bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><script src="%s"></script></head><body class="%s">`,
			templ.EscapeString(pageTitle(title)),
			htmxScript,
			bodyClass(authenticated),
		); err != nil {
			return err
		}
		if authenticated {
			if _, err := io.WriteString(w, `<nav class="app-nav"><a href="/app">Bar book</a><a href="/logout">Sign out</a></nav>`); err != nil {
				return err
			}
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func pageTitle(title string) string {
	if title == "" {
		return "mixup"
	}
	return title + " · mixup"
}

func bodyClass(authenticated bool) string {
	if authenticated {
		return "app-shell"
	}
	return "auth-shell"
}

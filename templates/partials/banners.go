package partials

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// SuccessBanner is shown on the submit form after a redirect with ?success=1.
func SuccessBanner() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="success">Event submitted successfully! <a href="/submit-event">Submit another event</a></div>`)
		return err
	})
}

// ErrorBanner is shown on the submit form after a redirect with ?error=1. The
// form path deliberately reports a generic failure, field detail stays on the
// JSON API path.
func ErrorBanner() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="error">Error submitting event. Please try again.</div>`)
		return err
	})
}

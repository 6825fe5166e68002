package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/communitycal/api/templates/partials"
)

const submitEventStyle = `<style>
body { font-family: Arial, sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; }
.form-group { margin-bottom: 15px; }
label { display: block; margin-bottom: 5px; font-weight: bold; }
input, textarea { width: 100%; padding: 8px; border: 1px solid #ddd; border-radius: 4px; }
textarea { height: 100px; resize: vertical; }
button { background-color: #007bff; color: white; padding: 10px 20px; border: none; border-radius: 4px; cursor: pointer; }
button:hover { background-color: #0056b3; }
.error { color: red; margin-bottom: 15px; }
.success { color: green; margin-bottom: 15px; }
a { color: #007bff; text-decoration: none; }
a:hover { text-decoration: underline; }
</style>`

const submitEventForm = `<form method="post" action="/submit-event">
<div class="form-group"><label for="title">Title:</label><input type="text" id="title" name="title" required></div>
<div class="form-group"><label for="start_time">Start Time:</label><input type="datetime-local" id="start_time" name="start_time" required></div>
<div class="form-group"><label for="end_time">End Time:</label><input type="datetime-local" id="end_time" name="end_time" required></div>
<div class="form-group"><label for="description">Description:</label><textarea id="description" name="description" required></textarea></div>
<div class="form-group"><label for="venue">Venue:</label><input type="text" id="venue" name="venue" required></div>
<div class="form-group"><label for="url">URL:</label><input type="url" id="url" name="url"></div>
<div class="form-group"><label for="tags">Tags (comma-separated):</label><input type="text" id="tags" name="tags" placeholder="e.g., music, outdoor, family"></div>
<button type="submit">Submit Event</button>
</form>`

// SubmitEventPage renders the HTML event submission form, with an optional
// success or error banner driven by the post-submit redirect flags.
func SubmitEventPage(appTitle string, success bool, hasError bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html><html><head><title>"+templ.EscapeString(appTitle)+"</title>"+submitEventStyle+"</head><body><h1>Submit Event</h1>"); err != nil {
			return err
		}
		if success {
			if err := partials.SuccessBanner().Render(ctx, w); err != nil {
				return err
			}
		} else if hasError {
			if err := partials.ErrorBanner().Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, submitEventForm+"</body></html>"); err != nil {
			return err
		}
		return nil
	})
}

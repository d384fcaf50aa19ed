package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Base wraps page content in the application shell: document head, htmx and
// its SSE extension, and the live-update connection to /events.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 64rem; padding: 1rem; color: #1c2431; }
.counters { display: flex; gap: 1rem; flex-wrap: wrap; margin: 1rem 0; }
.counter { border: 1px solid #d4dae3; border-radius: 6px; padding: 0.5rem 1rem; }
.counter strong { display: block; font-size: 1.4rem; }
.progress { background: #e8edf3; border-radius: 6px; height: 0.8rem; overflow: hidden; }
.progress span { display: block; height: 100%%; background: #2f7d4f; }
.controls { display: flex; gap: 0.5rem; margin: 1rem 0; flex-wrap: wrap; }
.card { border: 1px solid #d4dae3; border-radius: 6px; padding: 0.8rem 1rem; margin-bottom: 0.6rem; }
.card.overdue { border-color: #b3423a; }
.card h3 { margin: 0 0 0.3rem; }
.meta { color: #5a6676; font-size: 0.9rem; }
.actions { margin-top: 0.5rem; display: flex; gap: 0.5rem; }
form.editor { display: grid; gap: 0.5rem; max-width: 32rem; }
</style>
</head>
<body hx-ext="sse" sse-connect="/events">
<h1>%s</h1>
`, templ.EscapeString(title), templ.EscapeString(title)); err != nil {
			return err
		}

		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Play renders the polling game view. The page re-fetches the full game
// snapshot on an interval; there is no push channel.
func Play(gameID, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Word Blitz - `); err != nil {
			return err
		}
		if err := writeEscaped(w, code); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Game code</span>
        <h1 id="code">`); err != nil {
			return err
		}
		if err := writeEscaped(w, code); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</h1>
        <p id="status"></p>
      </header>
      <section class="panel"><pre id="state"></pre></section>
    </main>
    <script>
      const gameID = `); err != nil {
			return err
		}
		if err := writeJSString(w, gameID); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `;
      async function poll() {
        const resp = await fetch("/api/games/" + gameID);
        if (!resp.ok) return;
        const data = await resp.json();
        document.getElementById("status").textContent = data.status;
        document.getElementById("state").textContent = JSON.stringify(data, null, 2);
      }
      poll();
      setInterval(poll, 2000);
    </script>
  </body>
</html>`); err != nil {
			return err
		}
		return nil
	})
}

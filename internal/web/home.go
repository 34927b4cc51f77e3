package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Word Blitz</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Word Blitz</span>
        <h1>Describe fast. Guess faster.</h1>
        <p>Host a game in seconds or join a session with the six-letter code.</p>
      </header>

      <section class="panel">
        <div>
          <h2>Create a game</h2>
          <p>Start a lobby and share the code with your players.</p>
        </div>
        <form id="createForm">
          <input id="createNickname" placeholder="Your nickname" maxlength="20"/>
          <button class="primary" type="submit">Create game</button>
        </form>
        <div id="createResult" class="result"></div>
      </section>

      <section class="panel">
        <div>
          <h2>Join a game</h2>
          <p>Enter the code from the host and a nickname.</p>
        </div>
        <form id="joinForm">
          <input id="joinCode" placeholder="Game code" maxlength="6"/>
          <input id="joinNickname" placeholder="Your nickname" maxlength="20"/>
          <button class="primary" type="submit">Join game</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>
    </main>
    <script>
      const createForm = document.getElementById("createForm");
      createForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const nickname = document.getElementById("createNickname").value;
        const resp = await fetch("/api/games", {
          method: "POST",
          headers: {"Content-Type": "application/json"},
          body: JSON.stringify({nickname}),
        });
        const data = await resp.json();
        if (!resp.ok) {
          document.getElementById("createResult").textContent = data.error;
          return;
        }
        localStorage.setItem("wb_user_id", data.user_id);
        window.location = "/play/" + data.game_id;
      });
      const joinForm = document.getElementById("joinForm");
      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const code = document.getElementById("joinCode").value.trim();
        const nickname = document.getElementById("joinNickname").value;
        const resp = await fetch("/api/games/" + encodeURIComponent(code) + "/join", {
          method: "POST",
          headers: {"Content-Type": "application/json"},
          body: JSON.stringify({nickname}),
        });
        const data = await resp.json();
        if (!resp.ok) {
          document.getElementById("joinResult").textContent = data.error;
          return;
        }
        localStorage.setItem("wb_user_id", data.user_id);
        window.location = "/play/" + data.game_id;
      });
    </script>
  </body>
</html>`)
		return err
	})
}

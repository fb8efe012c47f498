package handler

import (
	"html/template"
	"net/http"

	"github.com/darts-ladder/internal/domain"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Darts Ladder</title>
<style>
  body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
  form { display: flex; flex-wrap: wrap; gap: .5rem; margin-bottom: 1rem; }
  input, select, button { padding: .4rem; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
  th, td { text-align: left; padding: .4rem .6rem; border-bottom: 1px solid #ddd; }
  .up { color: #2e7d32; }
  .down { color: #c62828; }
  #message { min-height: 1.2em; color: #555; }
</style>
</head>
<body>
<h1>Darts Ladder</h1>

<form id="match-form">
  <input name="player_name" placeholder="Player" required>
  <input name="opponent_name" placeholder="Opponent" required>
  <select name="winner">
    <option value="player">Player won</option>
    <option value="opponent">Opponent won</option>
  </select>
  <input name="checkout" type="number" min="0" value="0" placeholder="Checkout">
  <button type="submit">Record match</button>
</form>
<p id="message"></p>

<h2>Leaderboard</h2>
<table id="standings">
  <tr><th>Rank</th><th></th><th>Player</th><th>Elo</th><th>Games</th><th>Best checkout</th></tr>
  {{if not .Standings}}<tr><td colspan="6">No matches yet. Add the first one above.</td></tr>{{end}}
  {{range .Standings}}
  <tr>
    <td>{{.Rank}}</td>
    <td>{{if gt .Movement 0}}<span class="up">&#9650;</span>{{else if lt .Movement 0}}<span class="down">&#9660;</span>{{end}}</td>
    <td>{{.Player.DisplayName}}</td>
    <td>{{.Player.Rating}}</td>
    <td>{{.Player.GamesPlayed}}</td>
    <td>{{.Player.HighestCheckout}}</td>
  </tr>
  {{end}}
</table>

<h2>Recent matches</h2>
<table id="matches">
  <tr><th>Player</th><th>Opponent</th><th>Winner</th><th>Checkout</th><th>Played</th></tr>
  {{range .Matches}}
  <tr>
    <td>{{.Player}}</td>
    <td>{{.Opponent}}</td>
    <td>{{.Winner}}</td>
    <td>{{.Checkout}}</td>
    <td>{{.PlayedAt.Format "2006-01-02 15:04"}}</td>
  </tr>
  {{end}}
</table>

<button id="reset-data">Reset all data</button>

<script>
const form = document.getElementById("match-form");
const message = document.getElementById("message");

form.addEventListener("submit", async (event) => {
  event.preventDefault();
  const data = new FormData(form);
  const res = await fetch("/api/v1/matches", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({
      player_name: data.get("player_name"),
      opponent_name: data.get("opponent_name"),
      winner: data.get("winner"),
      checkout: Number(data.get("checkout")),
    }),
  });
  const body = await res.json();
  if (!body.success) {
    message.textContent = body.error;
    return;
  }
  message.textContent = body.data.winner + " beat " + body.data.loser +
    " (checkout " + body.data.checkout + ")";
  form.reset();
  location.reload();
});

document.getElementById("reset-data").addEventListener("click", async () => {
  const passphrase = prompt("Reset all data? Enter the reset passphrase:");
  if (passphrase === null) return;
  const res = await fetch("/api/v1/reset", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ passphrase }),
  });
  const body = await res.json();
  message.textContent = body.success ? "All data cleared." : body.error;
  if (body.success) location.reload();
});

const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = () => location.reload();
</script>
</body>
</html>
`))

type indexData struct {
	Standings []domain.Standing
	Matches   []domain.Match
}

// Index renders the board page. Rendering recomputes the standings, which
// also advances the persisted movement baseline.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		h.logger.Error("failed to compute standings", "error", err)
		http.Error(w, domain.ErrInternalError.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexData{
		Standings: standings,
		Matches:   h.service.RecentMatches(),
	}); err != nil {
		h.logger.Error("failed to render index", "error", err)
	}
}

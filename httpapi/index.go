package httpapi

import "net/http"

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// indexHTML is the chat page. It mints a session id on load, posts messages
// to the API, and renders the answer with a collapsible reasoning block.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Thoughtful AI Support</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2em auto; padding: 0 1em; }
#log { border: 1px solid #ddd; border-radius: 8px; padding: 1em; min-height: 300px; }
.turn { margin: 0.5em 0; }
.user { text-align: right; color: #1a4f8b; }
.agent { text-align: left; }
details { font-size: 0.85em; color: #666; margin-top: 0.25em; }
form { display: flex; gap: 0.5em; margin-top: 1em; }
input { flex: 1; padding: 0.5em; }
.error { color: #a00; }
</style>
</head>
<body>
<h1>Thoughtful AI Support Agent</h1>
<p>Ask me about Thoughtful AI's agents like EVA, CAM, and PHIL!</p>
<div id="log"></div>
<form id="form">
<input id="input" placeholder="How can I help you today?" autocomplete="off">
<button>Send</button>
</form>
<script>
const log = document.getElementById("log");
const form = document.getElementById("form");
const input = document.getElementById("input");
let sessionId = null;

async function ensureSession() {
  if (sessionId) return sessionId;
  const res = await fetch("/sessions", { method: "POST" });
  sessionId = (await res.json()).session_id;
  return sessionId;
}

function addTurn(cls, html) {
  const div = document.createElement("div");
  div.className = "turn " + cls;
  div.innerHTML = html;
  log.appendChild(div);
  log.scrollTop = log.scrollHeight;
}

function escapeHTML(s) {
  const d = document.createElement("div");
  d.textContent = s;
  return d.innerHTML;
}

form.addEventListener("submit", async (e) => {
  e.preventDefault();
  const text = input.value.trim();
  if (!text) return;
  input.value = "";
  addTurn("user", escapeHTML(text));

  try {
    const id = await ensureSession();
    const res = await fetch("/sessions/" + id + "/messages", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ text }),
    });
    const body = await res.json();
    if (!res.ok) {
      addTurn("agent error", escapeHTML(body.error || "request failed"));
      return;
    }
    const steps = (body.reasoning || []).map((s) => "<li>" + escapeHTML(s) + "</li>").join("");
    addTurn("agent", escapeHTML(body.answer) +
      "<details><summary>Agent reasoning (confidence " + body.confidence + ")</summary><ul>" +
      steps + "</ul></details>");
  } catch (err) {
    addTurn("agent error", "network error");
  }
});
</script>
</body>
</html>
`

package preview

// indexHTML is the live editor page: a textarea on the left, the rendered
// SVG on the right, re-rendered on every edit.
const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>sketchflow preview</title>
<style>
  body { margin: 0; display: flex; height: 100vh; font-family: monospace; }
  #editor { width: 40%; padding: 12px; border: none; border-right: 1px solid #ddd;
            font-size: 13px; resize: none; outline: none; }
  #view { flex: 1; overflow: auto; padding: 12px; background: #fafafa; }
  #err { color: #b00; white-space: pre-wrap; }
</style>
</head>
<body>
<textarea id="editor" spellcheck="false">{
  "type": "flow",
  "title": "Hello",
  "nodes": [
    {"id": "a", "label": "Start", "shape": "ellipse"},
    {"id": "b", "label": "Work"},
    {"id": "c", "label": "End", "shape": "ellipse"}
  ],
  "edges": [
    {"from": "a", "to": "b"},
    {"from": "b", "to": "c", "label": "done"}
  ]
}</textarea>
<div id="view"><div id="err"></div><div id="svg"></div></div>
<script>
  const editor = document.getElementById('editor');
  const svg = document.getElementById('svg');
  const err = document.getElementById('err');
  let timer;

  async function render() {
    try {
      const res = await fetch('/render', { method: 'POST', body: editor.value });
      const text = await res.text();
      if (!res.ok) { err.textContent = text; return; }
      err.textContent = '';
      svg.innerHTML = text;
    } catch (e) {
      err.textContent = String(e);
    }
  }

  editor.addEventListener('input', () => {
    clearTimeout(timer);
    timer = setTimeout(render, 300);
  });
  render();
</script>
</body>
</html>
`

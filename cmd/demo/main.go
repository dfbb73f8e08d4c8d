// Command demo renders a small HTML snippet through the engine's
// top-level document API against a headless TestContainer and prints
// the resulting box geometry, exercising create_from_string, render,
// and draw end to end the way a host program would.
package main

import (
	"fmt"

	"github.com/arturoeanton/gockore/container"
	"github.com/arturoeanton/gockore/document"
)

const demoHTML = `<!doctype html>
<html>
<head>
<style>
  body { font-family: sans-serif; font-size: 16px; color: #222; }
  h1 { font-size: 24px; font-weight: bold; margin: 0 0 8px 0; }
  ul { list-style-type: disc; }
  .row { display: flex; gap: 8px; }
  .row > div { flex: 1; background: #eee; padding: 4px; }
</style>
</head>
<body>
  <h1>gockore demo</h1>
  <ul><li>first item</li><li>second item</li></ul>
  <div class="row"><div>left</div><div>right</div></div>
</body>
</html>`

func main() {
	c := container.NewTestContainer(800, 600)
	doc := document.CreateFromString(demoHTML, c, nil, "about:demo")
	doc.Render(800, document.RenderAll)

	fmt.Printf("document %dx%d\n", doc.Width(), doc.Height())
	doc.Draw(container.Rect{X: 0, Y: 0, W: doc.Width(), H: doc.Height()}, 0, 0)
	for _, call := range c.Calls {
		fmt.Println(call)
	}
}

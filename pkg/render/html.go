package render

import (
	"bytes"
	"fmt"
	"html/template"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  html, body { margin: 0; height: 100%; background: {{.Background}}; }
  main { width: 100%; height: 90vh; display: flex; align-items: center; justify-content: center; }
  main svg { max-width: 100%; max-height: 100%; }
</style>
</head>
<body>
<main>
{{.SVG}}
</main>
</body>
</html>
`))

// ToHTML wraps an SVG diagram in a standalone HTML page. Node and edge
// tooltips come from the SVG itself.
func ToHTML(svg []byte, title, background string) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title      string
		Background template.CSS
		SVG        template.HTML
	}{
		Title:      title,
		Background: template.CSS(background),
		SVG:        template.HTML(stripXMLHeader(svg)),
	})
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// stripXMLHeader drops the XML declaration and doctype Graphviz puts before
// the <svg> element; they are not allowed inside an HTML body.
func stripXMLHeader(svg []byte) []byte {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		return svg[i:]
	}
	return svg
}

// Package preview builds the isolated document the CSS is played into and
// publishes changes to it.
package preview

import (
	"fmt"
	"html/template"
	"strings"
)

// StyleElementID is the id of the style element the player writes into.
const StyleElementID = "dynamic-style"

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Preview</title>
  <style>
    html, body {
      margin: 0;
      padding: 0;
      box-sizing: border-box;
    }
    * {
      margin: 0;
      padding: 0;
      box-sizing: border-box;
      -webkit-tap-highlight-color: transparent;
    }
    body {
      height: 100vh;
      width: 100%;
      display: flex;
      justify-content: center;
      align-items: center;
      background-color: {{.Background}};
    }
    .container {
      max-width: 1000px;
      margin: 0 auto;
      position: relative;
    }
  </style>
  <style id="{{.StyleID}}"></style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

var blankTemplate = template.Must(template.New("blank").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>Preview</title><style>body { background-color: {{.Background}}; }</style></head><body></body></html>
`))

type documentData struct {
	Background string
	StyleID    string
	Body       template.HTML
}

// Document renders the preview page around htmlBody with an empty dynamic
// style element. htmlBody is inserted verbatim.
func Document(htmlBody, background string) (string, error) {
	var b strings.Builder
	err := documentTemplate.Execute(&b, documentData{
		Background: background,
		StyleID:    StyleElementID,
		Body:       template.HTML(htmlBody),
	})
	if err != nil {
		return "", fmt.Errorf("rendering preview document: %w", err)
	}
	return b.String(), nil
}

// BlankDocument renders an empty page that only carries the background.
func BlankDocument(background string) (string, error) {
	var b strings.Builder
	if err := blankTemplate.Execute(&b, documentData{Background: background}); err != nil {
		return "", fmt.Errorf("rendering blank document: %w", err)
	}
	return b.String(), nil
}

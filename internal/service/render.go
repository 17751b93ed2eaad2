package service

import (
	"bytes"
	"errors"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	postContentOpen  = `<div class="post-content">`
	postContentClose = "</div>\n</div>"
)

var errMalformedContent = errors.New("post content section not found")

var postTemplate = template.Must(template.New("post").Parse(
	`<div class="post-container">
  <h1 class="post-title">{{.Title}}</h1>
  ` + postContentOpen + `{{.Body}}` + postContentClose))

// renderPost escapes the title and embeds the body markup verbatim.
func renderPost(title, body string) (string, error) {
	var buf bytes.Buffer
	if err := postTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body),
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// extractPostBody returns the body exactly as it was passed to renderPost.
// The escaped title cannot contain the opening marker, so its first
// occurrence starts the body.
func extractPostBody(rendered string) (string, error) {
	start := strings.Index(rendered, postContentOpen)
	if start < 0 || !strings.HasSuffix(rendered, postContentClose) {
		return "", errMalformedContent
	}
	start += len(postContentOpen)

	end := len(rendered) - len(postContentClose)
	if end < start {
		return "", errMalformedContent
	}
	return rendered[start:end], nil
}

// extractPostTitle returns the unescaped text of the rendered title heading.
func extractPostTitle(rendered string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return "", err
	}
	heading := doc.Find("h1.post-title").First()
	if heading.Length() == 0 {
		return "", errMalformedContent
	}
	return heading.Text(), nil
}

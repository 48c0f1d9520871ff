// Package markdown renders user text to sanitized HTML.
package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown into HTML that is safe to embed in a page.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				gmhtml.WithXHTML(),
			),
		),
		policy: policy,
	}
}

// Render never fails; on a conversion error it falls back to escaped text.
func (r *Renderer) Render(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		logrus.Warnf("markdown convert failed: %v", err)
		return "<p>" + html.EscapeString(source) + "</p>"
	}

	sanitized := r.policy.SanitizeBytes(buf.Bytes())
	return markUserLinks(string(sanitized))
}

// markUserLinks tags every anchor as user generated content.
func markUserLinks(htmlStr string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		rel := strings.Fields(s.AttrOr("rel", ""))
		for _, want := range []string{"ugc", "nofollow"} {
			if !containsString(rel, want) {
				rel = append(rel, want)
			}
		}
		s.SetAttr("rel", strings.Join(rel, " "))
	})

	out, err := doc.Find("body").Html()
	if err != nil || out == "" {
		return htmlStr
	}
	return strings.TrimSpace(out)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

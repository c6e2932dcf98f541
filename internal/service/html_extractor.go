package service

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// htmlToText renders an HTML document as plain text, dropping scripts,
// styles and head content and inserting paragraph breaks for block
// elements.
func htmlToText(b []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(b))
	if err != nil || doc == nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	block := map[string]bool{
		"p": true, "div": true, "section": true, "article": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"li": true, "ul": true, "ol": true, "blockquote": true, "tr": true,
	}
	skip := map[string]bool{
		"script": true, "style": true, "head": true, "title": true, "nav": true,
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			if skip[tag] {
				return
			}
			if tag == "br" {
				sb.WriteString("\n")
			}
			if block[tag] {
				sb.WriteString("\n\n")
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") && !strings.HasSuffix(sb.String(), " ") {
					sb.WriteString(" ")
				}
				sb.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(sb.String()), nil
}

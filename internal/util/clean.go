package util

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var charReplacementMap = map[string]string{
	"‘": "'", "’": "'", "“": "\"", "”": "\"",
	"–": "-", "—": "--", "…": "...", " ": " ",
	"": "'", "": "'", "": "\"", "": "\"",
}

// skippedTags are elements whose text content carries no description value.
var skippedTags = map[string]bool{
	"script": true, "style": true, "head": true, "noscript": true,
}

// CleanDescription normalizes an item description coming from a retailer
// feed: HTML markup is stripped, typographic characters are mapped to
// their ASCII forms, and whitespace is collapsed.
func CleanDescription(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}

	if strings.ContainsAny(text, "<>") {
		text = stripHTML(text)
	}

	for bad, good := range charReplacementMap {
		text = strings.ReplaceAll(text, bad, good)
	}

	return strings.Join(strings.Fields(text), " ")
}

// stripHTML extracts the visible text of an HTML fragment. A fragment that
// fails to parse is returned unchanged; html.Parse is lenient enough that
// this only happens on reader errors.
func stripHTML(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && skippedTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return sb.String()
}

package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText recovers the readable text of an HTML fragment. Feed records
// sometimes carry only an HTML-rendered body; running the recognizer over raw
// markup would surface tag and attribute noise as candidates.
func VisibleText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		// Not parseable as HTML; scan it as-is.
		return fragment
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(buf.String())
}

package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// UntitledFallback is returned when a document carries no usable <title>.
const UntitledFallback = "Untitled"

// ExtractTitle parses HTML and returns the text of the first <title>
// element, trimmed. Documents without a title (or with an empty one) get
// UntitledFallback.
func ExtractTitle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return UntitledFallback, nil
	}
	return title, nil
}

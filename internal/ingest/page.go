package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// UnknownTitle is the sentinel used when a page yields no usable heading.
const UnknownTitle = "Unknown Title"

const minParagraphLen = 100

// ExtractTitle returns the first h1 on the page, falling back to the
// document title, falling back to the sentinel.
func ExtractTitle(doc *goquery.Document) string {
	if h1 := cleanText(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if title := cleanText(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return UnknownTitle
}

// ExtractDescription prefers the page-level meta description, falling
// back to the first sufficiently long paragraph among the first five.
// The result is sanitized and truncated to maxLen.
func ExtractDescription(doc *goquery.Document, maxLen int) string {
	if meta, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if desc := sanitizeText(meta); desc != "" {
			return TruncateText(desc, maxLen)
		}
	}

	var desc string
	doc.Find("p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= 5 {
			return false
		}
		text := cleanText(sel.Text())
		if len(text) > minParagraphLen {
			desc = text
			return false
		}
		return true
	})

	if desc == "" {
		return ""
	}
	return TruncateText(sanitizeText(desc), maxLen)
}

// collectPDFLinks returns absolute URLs of PDF links on the page, used
// for best-effort deadline supplementation.
func collectPDFLinks(doc *goquery.Document, resolve func(string) string) []string {
	var links []string
	doc.Find(`a[href]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(href)), ".pdf") {
			return
		}
		links = appendUnique(links, resolve(href))
	})
	return links
}

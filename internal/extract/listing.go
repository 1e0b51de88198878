package extract

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/tchluc/emploitogo-crawler/internal/patterns"
)

// JobLinks enumerates detail-page URLs from a listing page, resolved
// against baseURL, deduplicated, in document order.
func JobLinks(doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	var links []string
	doc.Find(".post-item").Each(func(_ int, article *goquery.Selection) {
		href, ok := article.Find(".entry-title a").First().Attr("href")
		if !ok || href == "" {
			return
		}
		links = append(links, resolveURL(base, href))
	})
	return patterns.Dedupe(links)
}

// NextPageURL resolves the "next" pagination link, or "" when the listing
// has no further pages.
func NextPageURL(doc *goquery.Document, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	href, ok := doc.Find(".pages-numbers .pagi-item-next[href]").First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	return resolveURL(base, href)
}

// PaginationURLs enumerates every numbered pagination link on the listing.
func PaginationURLs(doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	var pages []string
	doc.Find(".pages-numbers .pagi-item[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			pages = append(pages, resolveURL(base, href))
		}
	})
	return patterns.Dedupe(pages)
}

// Package extract derives job-posting fields from parsed detail pages.
//
// Every extraction function is total: a selector or pattern miss yields an
// absent value, never an error. Selection among candidates is
// first-match-wins over ordered selector and pattern lists.
package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/tchluc/emploitogo-crawler/internal/jobs"
	"github.com/tchluc/emploitogo-crawler/internal/patterns"
)

const (
	maxImages          = 5
	maxQualifications  = 3
	maxRequirements    = 2
	descriptionPreview = 300
)

// Job builds a raw record from a detail-page document. The record still
// needs a pass through the normalizer before it is stored.
func Job(doc *goquery.Document, pageURL string, scrapedAt time.Time) jobs.Record {
	text := doc.Text()
	return jobs.Record{
		URL:                pageURL,
		ScrapedAt:          scrapedAt,
		Title:              Title(doc),
		Description:        Description(doc),
		Content:            Content(doc),
		PublicationDate:    PublicationDate(doc),
		Deadline:           Deadline(text),
		Company:            Company(text),
		Location:           Location(text),
		ContractType:       ContractType(text),
		Sector:             Sector(text),
		Category:           Category(doc),
		SalaryRaw:          Salary(text),
		ExperienceLevel:    ExperienceLevel(text),
		Qualifications:     Qualifications(text),
		Requirements:       Requirements(text),
		ApplicationProcess: ApplicationProcess(text),
		Benefits:           Benefits(text),
		ContactInfo:        Contacts(text),
		MetaInfo:           MetaInfo(doc),
		Images:             Images(doc, pageURL),
	}
}

// Title extracts the posting title from the first matching heading selector.
func Title(doc *goquery.Document) *string {
	return jobs.Str(selectText(doc, titleSelectors))
}

// Description returns the listing excerpt when present, otherwise a
// 300-character preview of the main content.
func Description(doc *goquery.Document) *string {
	if excerpt := selectText(doc, []string{".entry-excerpt"}); excerpt != "" {
		return jobs.Str(excerpt)
	}
	body := selectText(doc, descriptionBodySelectors)
	if body == "" {
		return nil
	}
	if utf8.RuneCountInString(body) > descriptionPreview {
		return jobs.Str(string([]rune(body)[:descriptionPreview]) + "...")
	}
	return jobs.Str(body)
}

// Content extracts the full posting text.
func Content(doc *goquery.Document) *string {
	return jobs.Str(selectText(doc, contentSelectors))
}

// PublicationDate reads the raw publication date from page metadata.
func PublicationDate(doc *goquery.Document) *string {
	return jobs.Str(selectText(doc, dateSelectors))
}

// Category reads the posting category, defaulting to "Emploi Afrique".
func Category(doc *goquery.Document) *string {
	if cat := selectText(doc, categorySelectors); cat != "" {
		return jobs.Str(cat)
	}
	return jobs.Str("Emploi Afrique")
}

// Company scans free text for recruitment phrasings. A candidate from a
// matching pattern is cleaned of its leading article and length-validated;
// on failure the scan moves to the next pattern.
func Company(text string) *string {
	for _, re := range companyPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		company := companyLeadingArticle.ReplaceAllString(strings.TrimSpace(m[1]), "")
		if n := utf8.RuneCountInString(company); n > 2 && n < 100 {
			return jobs.Str(company)
		}
	}
	return nil
}

// Location cross-checks location-pattern captures against the city
// gazetteer; only gazetteer members are accepted. When no pattern capture
// qualifies, the first gazetteer city mentioned anywhere in the text wins.
func Location(text string) *string {
	lower := strings.ToLower(text)
	for _, re := range locationPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, city := range knownCities {
				if m[1] == city {
					return jobs.Str(city)
				}
			}
		}
	}
	for _, city := range knownCities {
		if strings.Contains(lower, strings.ToLower(city)) {
			return jobs.Str(city)
		}
	}
	return nil
}

// ContractType detects the contract label by ordered substring search.
func ContractType(text string) *string {
	lower := strings.ToLower(text)
	for _, ct := range contractTypes {
		if strings.Contains(lower, ct.Pattern) {
			return jobs.Str(ct.Label)
		}
	}
	return nil
}

// Sector detects the business sector by ordered substring search.
func Sector(text string) *string {
	lower := strings.ToLower(text)
	for _, sector := range sectors {
		if strings.Contains(lower, strings.ToLower(sector)) {
			return jobs.Str(sector)
		}
	}
	return nil
}

// Deadline extracts the raw application deadline date token.
func Deadline(text string) *string {
	if m, ok := deadlinePatterns.First(text); ok {
		return jobs.Str(m)
	}
	return nil
}

// Salary returns the full raw salary mention, amounts and units included.
func Salary(text string) *string {
	if m, ok := salaryPatterns.FirstFull(text); ok {
		return jobs.Str(m)
	}
	return nil
}

// ExperienceLevel prefers numeric year patterns over level keywords.
func ExperienceLevel(text string) *string {
	lower := strings.ToLower(text)
	if years, ok := experiencePatterns.First(lower); ok {
		return jobs.Str(fmt.Sprintf("%s ans d'expérience", years))
	}
	for _, kw := range experienceKeywords {
		if strings.Contains(lower, kw) {
			return jobs.Str(kw)
		}
	}
	return nil
}

// Qualifications joins up to three qualification mentions.
func Qualifications(text string) *string {
	return joined(qualificationPatterns, text, maxQualifications)
}

// Requirements joins up to two requirement-section mentions.
func Requirements(text string) *string {
	return joined(requirementPatterns, text, maxRequirements)
}

// ApplicationProcess extracts how-to-apply instructions.
func ApplicationProcess(text string) *string {
	if m, ok := applicationPatterns.First(text); ok {
		return jobs.Str(strings.TrimSpace(m))
	}
	return nil
}

// Benefits extracts the advantages section lead.
func Benefits(text string) *string {
	if m, ok := benefitsPatterns.First(text); ok {
		return jobs.Str(strings.TrimSpace(m))
	}
	return nil
}

// Contacts collects deduplicated emails and phone numbers. Phone patterns
// run country-specific formats first, then the generic shapes.
func Contacts(text string) *jobs.ContactInfo {
	info := jobs.ContactInfo{
		Emails: patterns.Dedupe(emailPattern.FindAllString(text, -1)),
		Phones: patterns.Dedupe(phonePatterns.All(text)),
	}
	if len(info.Emails) == 0 && len(info.Phones) == 0 {
		return nil
	}
	return &info
}

// MetaInfo gathers loose page metadata (comment count, author).
func MetaInfo(doc *goquery.Document) map[string]string {
	meta := make(map[string]string)
	if comments := selectText(doc, []string{".meta-comments a"}); comments != "" {
		meta["comments_count"] = comments
	}
	if author := selectText(doc, []string{".meta-author", ".author"}); author != "" {
		meta["author"] = author
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// Images collects up to five images in document order, resolving relative
// sources against the page URL.
func Images(doc *goquery.Document, pageURL string) []jobs.ImageRef {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	var images []jobs.ImageRef
	doc.Find(".entry-content img, .post-content img, img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return true
		}
		images = append(images, jobs.ImageRef{
			URL:   resolveURL(base, src),
			Alt:   s.AttrOr("alt", ""),
			Title: s.AttrOr("title", ""),
		})
		return len(images) < maxImages
	})
	return images
}

func joined(chain patterns.Chain, text string, limit int) *string {
	found := chain.All(text)
	if len(found) == 0 {
		return nil
	}
	if len(found) > limit {
		found = found[:limit]
	}
	for i, f := range found {
		found[i] = strings.TrimSpace(f)
	}
	return jobs.Str(strings.Join(found, " | "))
}

func selectText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() > 0 {
			if text := strings.TrimSpace(node.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

func resolveURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

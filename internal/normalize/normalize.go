// Package normalize canonicalizes extracted record fields.
//
// Every function here is pure and idempotent: unrecognized or
// already-canonical values pass through unchanged, so applying the
// normalizer twice is a no-op.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tchluc/emploitogo-crawler/internal/jobs"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	controlChars   = regexp.MustCompile(`[\x00-\x1f\x7f\x{80}-\x{9f}]`)
	digitGroups    = regexp.MustCompile(`\d+(?:[,\s]\d+)*`)

	// Period detection needs word boundaries: "par an" is annual but the
	// "an" inside "dans" or "avantage" is not. Trailing \b is avoided after
	// accented letters, where Go's ASCII boundary misfires.
	annualPeriod = regexp.MustCompile(`(?i)\bannuel|\bannée|\bans?\b`)
	dailyPeriod  = regexp.MustCompile(`(?i)\bjournalier|\bjours?\b`)
)

// datePatterns pairs each structural pattern with its field order. The
// first structural match wins; invalid calendar values reject the match
// and the next pattern is tried.
var datePatterns = []struct {
	re    *regexp.Regexp
	order string // dmy or ymd
}{
	{regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), "dmy"},
	{regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`), "dmy"},
	{regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`), "ymd"},
}

// locationAliases folds accented/unaccented city spellings to the canonical
// display form. Lookup is case-insensitive.
var locationAliases = map[string]string{
	"lome":     "Lomé",
	"lomé":     "Lomé",
	"kara":     "Kara",
	"sokode":   "Sokodé",
	"sokodé":   "Sokodé",
	"kpalime":  "Kpalimé",
	"kpalimé":  "Kpalimé",
	"atakpame": "Atakpamé",
	"atakpamé": "Atakpamé",
}

// contractAliases folds contract labels to their canonical display form.
var contractAliases = map[string]string{
	"cdi":           "CDI",
	"cdd":           "CDD",
	"stage":         "Stage",
	"freelance":     "Freelance",
	"temps partiel": "Temps partiel",
	"temps plein":   "Temps plein",
	"consultant":    "Consultant",
	"bénévolat":     "Bénévolat",
}

// keywordVocabulary lists the technical terms and soft skills matched
// against descriptions. Results keep vocabulary-declaration order.
var keywordVocabulary = []string{
	"python", "java", "javascript", "php", "sql", "mysql", "postgresql",
	"html", "css", "react", "angular", "vue", "node.js", "django",
	"flask", "spring", "laravel", "wordpress", "git", "docker",
	"kubernetes", "aws", "azure", "gcp", "linux", "windows",
	"photoshop", "illustrator", "figma", "sketch",
	"communication", "leadership", "teamwork", "management",
	"analytique", "créatif", "autonome", "rigoureux",
}

// Apply canonicalizes every field of a record in place and returns it.
func Apply(rec jobs.Record) jobs.Record {
	rec.Title = cleanPtr(rec.Title)
	rec.Company = cleanPtr(rec.Company)
	rec.Location = cleanPtr(rec.Location)
	rec.Description = cleanPtr(rec.Description)
	rec.Sector = cleanPtr(rec.Sector)

	if rec.Location != nil {
		rec.Location = jobs.Str(Location(*rec.Location))
	}
	if rec.ContractType != nil {
		rec.ContractType = jobs.Str(ContractType(*rec.ContractType))
	}
	if rec.SalaryRaw != nil {
		rec.SalaryNormalized = Salary(*rec.SalaryRaw)
	}
	if rec.PublicationDate != nil {
		rec.PublicationDateNormalized = jobs.Str(Date(*rec.PublicationDate))
	}
	if rec.Deadline != nil {
		rec.DeadlineNormalized = jobs.Str(Date(*rec.Deadline))
	}
	if rec.Description != nil {
		rec.Keywords = Keywords(*rec.Description)
	}
	return rec
}

// CleanText collapses whitespace runs to a single space, strips C0/C1
// control characters, and trims the result.
func CleanText(text string) string {
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = controlChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Location folds known city spelling variants to their canonical form.
// Unrecognized values pass through unchanged.
func Location(location string) string {
	if canonical, ok := locationAliases[strings.ToLower(location)]; ok {
		return canonical
	}
	return location
}

// ContractType folds known contract labels to their canonical form.
// Unrecognized values pass through unchanged.
func ContractType(contractType string) string {
	if canonical, ok := contractAliases[strings.ToLower(contractType)]; ok {
		return canonical
	}
	return contractType
}

// Salary parses a raw salary mention into a structured amount. The first
// digit group wins; currency and period fall back to FCFA and monthly.
// Unparseable numeric text yields nil while the raw string is preserved
// upstream.
func Salary(raw string) *jobs.Salary {
	group := digitGroups.FindString(raw)
	if group == "" {
		return nil
	}
	amount, err := strconv.Atoi(strings.NewReplacer(",", "", " ", "").Replace(group))
	if err != nil {
		return nil
	}

	lower := strings.ToLower(raw)
	currency := jobs.CurrencyFCFA
	switch {
	case strings.Contains(raw, "€") || strings.Contains(lower, "euro"):
		currency = jobs.CurrencyEUR
	case strings.Contains(raw, "$") || strings.Contains(lower, "dollar"):
		currency = jobs.CurrencyUSD
	}

	period := jobs.PeriodMonthly
	switch {
	case annualPeriod.MatchString(raw):
		period = jobs.PeriodAnnual
	case dailyPeriod.MatchString(raw):
		period = jobs.PeriodDaily
	}

	return &jobs.Salary{
		Amount:   amount,
		Currency: currency,
		Period:   period,
		Raw:      raw,
	}
}

// Date re-emits the first structurally valid date found in the input as
// YYYY-MM-DD. Patterns are tried in order (D/M/Y, D-M-Y, Y-M-D); invalid
// calendar values reject the match. No match returns "".
func Date(raw string) string {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		var year, month, day int
		if p.order == "ymd" {
			year, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			day, _ = strconv.Atoi(m[3])
		} else {
			day, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			year, _ = strconv.Atoi(m[3])
		}
		if !validDate(year, month, day) {
			continue
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	return ""
}

// Keywords returns the vocabulary entries present in the description, in
// vocabulary-declaration order. Matching is case-insensitive substring
// membership.
func Keywords(description string) []string {
	lower := strings.ToLower(description)
	var found []string
	for _, kw := range keywordVocabulary {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func cleanPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return jobs.Str(CleanText(*p))
}

// validDate rejects values time.Date would silently normalize (day 32
// rolling into the next month).
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

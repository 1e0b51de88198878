// Package structured implements the second-pass extractor that re-derives
// high-fidelity job metadata from free-running text and titles.
//
// Functions here are pure, total, and independent of each other: every
// field reads the whole text on its own, with no shared scan state.
package structured

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tchluc/emploitogo-crawler/internal/jobs"
	"github.com/tchluc/emploitogo-crawler/internal/patterns"
)

var (
	entreprisePattern = regexp.MustCompile(`(?i)(le|la|l['’]|société|centre|groupe|compagnie)\s+([A-Z][A-Za-z0-9&\-\s]+)`)

	villes = []string{
		"Lomé", "Kara", "Sokodé", "Kpalimé", "Atakpamé", "Dapaong",
		"Abidjan", "Cotonou", "Ouagadougou", "Bamako",
	}
	villePatterns = compileWordPatterns(villes)

	postePattern = regexp.MustCompile(`(?i)\brecrutement (?:d[eu]|pour)\s+(stagiaires?|postulant|agent|collaborateur|technicien|employé|ingénieur|commercial|assistant|manager|consultant|superviseur|chef|responsable|directeur|secrétaire|chargé[ée]?)`)
	stagePattern = regexp.MustCompile(`(?i)stage|stagiaire`)

	contratPattern = regexp.MustCompile(`(?i)(cdi|cdd|stage|bénévolat|intérim|freelance|contrat à durée déterminée|contrat à durée indéterminée)`)

	demarragePattern = regexp.MustCompile(`(?i)(?:d[ée]marrage|d[ée]but|prise de poste|à partir du)\s*[:\-]?\s*(\d{1,2}\s*[a-zéû]+\s*\d{4})`)

	skillPatterns = patterns.Compile(
		`(?i)(bac ?\+ ?[1-9]|licence|master|doctorat|bts|dut|dipl[ôo]me|certificat)`,
		`(?i)(rigoureux|autonome|motivé|dynamique|créatif|organisé|ponctuel|esprit d['’]équipe|polyvalent|proactif|communication)`,
	)

	sectionHeaderPattern = regexp.MustCompile(`(?i)(missions principales|missions|tâches principales|tâches|responsabilités)([:\s]+)`)

	// nextSectionTitles bound a located task section: the section ends just
	// before the first of these headers found on a fresh line.
	nextSectionTitles = []string{
		`profil`, `expérience`, `aptitude`, `qualité`, `compétence`,
		`date limite`, `document(s)? à fournir`, `pour postuler`, `candidature`,
	}
	nextSectionPatterns = compileSectionPatterns(nextSectionTitles)

	bulletPattern = regexp.MustCompile(`[-*•]\s*(.+?)(?:\n|$)`)

	actionVerbPattern = regexp.MustCompile(`(?i)^(Participer|Réaliser|Assurer|Animer|Contribuer|Préparer|Gérer|Encadrer|Aider|Soutenir|Accompagner|Élaborer|Analyser|Développer|Effectuer|Organiser|Coordonner|Superviser|Appuyer|Créer|Mettre en place|Participate|Support|Lead|Develop|Manage|Assist|Prepare|Write|Design|Test|Deliver)`)
	taskPhrasePattern = regexp.MustCompile(`(?i)^(?:Être chargé de|Il s['’]agira de|Vous serez amené à|La mission consiste à|La mission principale est de|Sous la direction de)`)

	deadlinePattern = regexp.MustCompile(`(?i)(?:date limite de dépôt des candidatures|date limite de candidature|date limite|avant le|jusqu['’]?au|deadline|dossiers de candidatures)[:\s]*(\d{1,2}[ /\-][a-zéû0-9]+[ /\-]\d{4})`)

	documentsPattern = regexp.MustCompile(`(?i)(curriculum vitae|cv|lettre de motivation|copie diplôme|photo|pièce d['’]identité|relevé de notes|attestation)`)

	titleCompanyPattern  = regexp.MustCompile(`(?i)(le|la|l['’]|société|entreprise|groupe|compagnie)?\s*([A-Z0-9][A-Za-z0-9&\-\séÉèêàâçôûüï]+?)\s+(recrute|recherche|embauche|offre|propose)`)
	titleBeforeVerb      = regexp.MustCompile(`(?i)^(.*?)(recrute|recherche|embauche|offre|propose)`)
	titleLeadingArticles = regexp.MustCompile(`(?i)^(Le|La|L['’]|Société|Entreprise|Groupe|Compagnie)\s+`)

	numericDateToken = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	spelledDateToken = regexp.MustCompile(`(?i)(\d{1,2}\s+[a-zéû]+\s+\d{4})`)

	phraseSplitter = regexp.MustCompile(`[\n.]`)
)

const (
	minFragmentLen = 10
	minBulletLen   = 6
)

// ExtractAll runs every second-pass extractor over a (content, title)
// pair. Title-derived company and date override the content-derived values
// whenever a title is present.
func ExtractAll(content string, title *string) jobs.StructuredInfo {
	info := jobs.StructuredInfo{
		Title:                title,
		JobDetails:           JobDetails(content),
		RequiredSkills:       RequiredSkills(content),
		InternshipTasks:      InternshipTasks(content),
		ApplicationDeadline:  ApplicationDeadline(content),
		ApplicationDocuments: ApplicationDocuments(content),
	}
	if title != nil {
		info.JobDetails.Entreprise = CompanyFromTitle(*title)
		info.JobDetails.PublicationDate = DateFromTitle(*title)
	}
	return info
}

// JobDetails derives the core posting facts from free-running content.
func JobDetails(text string) jobs.JobDetails {
	text = FixEncoding(text)
	details := jobs.JobDetails{}

	if m := entreprisePattern.FindStringSubmatch(text); m != nil {
		details.Entreprise = jobs.Str(strings.TrimSpace(m[2]))
	}

	for i, re := range villePatterns {
		if re.MatchString(text) {
			details.Ville = jobs.Str(villes[i])
			break
		}
	}

	if m := postePattern.FindStringSubmatch(text); m != nil {
		details.TypeDePoste = jobs.Str(capitalize(m[1]))
	} else if stagePattern.MatchString(text) {
		details.TypeDePoste = jobs.Str("Stagiaire")
	}

	if m := contratPattern.FindStringSubmatch(text); m != nil {
		details.TypeDeContrat = jobs.Str(strings.ToUpper(m[1]))
	} else if strings.Contains(strings.ToLower(text), "stage") {
		details.TypeDeContrat = jobs.Str("STAGE")
	}

	if m := demarragePattern.FindStringSubmatch(text); m != nil {
		details.DateDeDemarrage = jobs.Str(m[1])
	}

	return details
}

// RequiredSkills returns diploma and quality mentions, title-cased and
// deduplicated preserving first occurrence, or nil when none match.
func RequiredSkills(text string) []string {
	text = FixEncoding(text)
	found := skillPatterns.All(text)
	if len(found) == 0 {
		return nil
	}
	for i, f := range found {
		found[i] = titleCase(f)
	}
	return patterns.Dedupe(found)
}

// InternshipTasks locates the missions/tâches/responsabilités section and
// extracts its task lines. Bulleted lines win when present; otherwise
// sentence fragments opening with an action verb or a task-introducing
// phrase qualify. Without any section header, bullets are harvested from
// the whole text.
func InternshipTasks(text string) []string {
	text = FixEncoding(text)

	section, found := taskSection(text)
	if !found {
		return bulletLines(text)
	}

	if tasks := bulletLines(section); tasks != nil {
		return tasks
	}

	var tasks []string
	for _, phrase := range phraseSplitter.Split(section, -1) {
		phrase = strings.TrimSpace(phrase)
		if utf8.RuneCountInString(phrase) < minFragmentLen {
			continue
		}
		if actionVerbPattern.MatchString(phrase) || taskPhrasePattern.MatchString(phrase) {
			tasks = append(tasks, phrase)
		}
	}
	return tasks
}

// ApplicationDeadline returns the date token following a
// deadline-introducing phrase, or nil.
func ApplicationDeadline(text string) *string {
	text = FixEncoding(text)
	if m := deadlinePattern.FindStringSubmatch(text); m != nil {
		return jobs.Str(m[1])
	}
	return nil
}

// ApplicationDocuments returns the set of required application documents,
// title-cased, or nil when none are mentioned.
func ApplicationDocuments(text string) []string {
	text = FixEncoding(text)
	docs := documentsPattern.FindAllStringSubmatch(text, -1)
	if docs == nil {
		return nil
	}
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, titleCase(d[1]))
	}
	return patterns.Dedupe(out)
}

// CompanyFromTitle extracts the recruiting company from a posting title:
// an optional qualifier, a capitalized name, then a recruitment verb. When
// that shape is absent, everything before the first recruitment verb is
// taken with its leading determiner stripped.
func CompanyFromTitle(title string) *string {
	if title == "" {
		return nil
	}
	if m := titleCompanyPattern.FindStringSubmatch(title); m != nil {
		return jobs.Str(strings.TrimSpace(m[2]))
	}
	if m := titleBeforeVerb.FindStringSubmatch(title); m != nil {
		company := strings.Trim(m[1], " -")
		company = titleLeadingArticles.ReplaceAllString(company, "")
		return jobs.Str(strings.TrimSpace(company))
	}
	return nil
}

// DateFromTitle finds a date token in a posting title: a numeric D/M/Y
// token first, else a spelled-month token. The two searches are mutually
// exclusive alternatives.
func DateFromTitle(title string) *string {
	if title == "" {
		return nil
	}
	if m := numericDateToken.FindStringSubmatch(title); m != nil {
		return jobs.Str(m[1])
	}
	if m := spelledDateToken.FindStringSubmatch(title); m != nil {
		return jobs.Str(m[1])
	}
	return nil
}

// taskSection returns the text between the first task-section header and
// the next known section header (or end of text).
func taskSection(text string) (string, bool) {
	loc := sectionHeaderPattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	start := loc[1]
	end := len(text)
	for _, re := range nextSectionPatterns {
		if n := re.FindStringIndex(text[start:]); n != nil && start+n[0] < end {
			end = start + n[0]
			break
		}
	}
	return strings.TrimSpace(text[start:end]), true
}

// compileWordPatterns builds whole-word matchers. \b is ASCII-only in Go
// regexp and misfires around accented finals (Lomé), so the boundaries are
// spelled out against Unicode letters.
func compileWordPatterns(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`(?i)(?:^|[^\p{L}])` + regexp.QuoteMeta(w) + `(?:$|[^\p{L}])`)
	}
	return out
}

func compileSectionPatterns(titles []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(titles))
	for i, t := range titles {
		out[i] = regexp.MustCompile(`(?i)\n\s*` + t)
	}
	return out
}

// bulletLines extracts trimmed bullet lines longer than the minimum, or
// nil when the text has no qualifying bullets.
func bulletLines(text string) []string {
	var tasks []string
	for _, m := range bulletPattern.FindAllStringSubmatch(text, -1) {
		line := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(line) >= minBulletLen {
			tasks = append(tasks, line)
		}
	}
	return tasks
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

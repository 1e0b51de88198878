package extract

import (
	"regexp"

	"github.com/tchluc/emploitogo-crawler/internal/patterns"
)

// Selector chains, most specific first. The first selector that matches an
// element wins.
var (
	titleSelectors = []string{
		"h1.entry-title",
		"h1",
		".post-title h1",
		".entry-header h1",
		`h1[class*="title"]`,
	}

	contentSelectors = []string{
		".entry-content",
		".post-content",
		".content",
		"main .container",
		"article",
	}

	descriptionBodySelectors = []string{
		".entry-content",
		".post-content",
		".content",
		"main",
	}

	dateSelectors = []string{
		".meta-date",
		".entry-meta .meta-date",
		"time",
		".published",
		".post-date",
	}

	categorySelectors = []string{
		".meta-firstcat",
		".category",
		".post-category",
	}
)

// knownCities is the gazetteer used to validate location captures. Loose
// capture groups match plenty of capitalized words; only gazetteer members
// are accepted.
var knownCities = []string{
	"Lomé", "Kara", "Sokodé", "Kpalimé", "Atakpamé", "Tsévié", "Aného",
	"Abidjan", "Douala", "Yaoundé", "Dakar", "Cotonou", "Ouagadougou",
	"Bamako", "Accra", "Lagos", "Kinshasa", "Libreville", "Niamey",
}

var companyPatterns = patterns.Compile(
	`(?i)La société\s+(.*?)\s+recherche`,
	`(?i)L['’]entreprise\s+(.*?)\s+recrute`,
	`(?i)Le groupe\s+(.*?)\s+recrute`,
	`(?i)La compagnie\s+(.*?)\s+recrute`,
	`(?i)(.*?)\s+recrute`,
	`(?i)(.*?)\s+cherche`,
	`(?i)RECRUTEMENT.*?([\p{L}\p{N}_]+(?:\s+[\p{L}\p{N}_]+)*)`,
)

var companyLeadingArticle = regexp.MustCompile(`(?i)^(la|le|l['’]|une|un)\s+`)

var locationPatterns = patterns.Compile(
	`(?:à|au|en)\s+([A-Z][a-zé]+(?:\s+[A-Z][a-zé]+)*)`,
	`Lieu\s*:?\s*([A-Z][a-zé]+(?:\s+[A-Z][a-zé]+)*)`,
	`Poste basé\s+(?:à|au|en)\s+([A-Z][a-zé]+)`,
	`Siège\s*:?\s*([A-Z][a-zé]+)`,
)

// contractTypes maps lowercase substrings to canonical labels, checked in
// declaration order.
var contractTypes = []struct {
	Pattern string
	Label   string
}{
	{"cdi", "CDI"},
	{"cdd", "CDD"},
	{"stage", "Stage"},
	{"freelance", "Freelance"},
	{"consultant", "Consultant"},
	{"temps partiel", "Temps partiel"},
	{"temps plein", "Temps plein"},
	{"bénévolat", "Bénévolat"},
	{"interim", "Interim"},
	{"apprentissage", "Apprentissage"},
}

var sectors = []string{
	"Informatique", "IT", "Technologies", "Finance", "Banque",
	"Assurance", "Santé", "Médical", "Education", "Formation",
	"Commerce", "Marketing", "Communication", "Logistique",
	"Transport", "Agriculture", "Industrie", "Construction",
	"BTP", "Humanitaire", "ONG", "Consulting", "Juridique",
	"Ressources Humaines", "RH", "Comptabilité", "Audit", "Génie Civil",
}

var deadlinePatterns = patterns.Compile(
	`[Dd]ate limite[:\s]*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`,
	`[Aa]vant le[:\s]*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`,
	`[Jj]usqu['’]au[:\s]*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`,
	`[Dd]eadline[:\s]*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`,
	`[Ll]imite[:\s]*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`,
	`(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})\s*(?:au plus tard|maximum)`,
)

var salaryPatterns = patterns.Compile(
	`(?i)(\d+[\s,]*\d*)\s*(?:FCFA|CFA|F\s*CFA)`,
	`(?i)salaire[:\s]*(\d+[\s,]*\d*)\s*(?:FCFA|CFA|F\s*CFA|euros?|€|\$)`,
	`(?i)rémunération[:\s]*(\d+[\s,]*\d*)\s*(?:FCFA|CFA|F\s*CFA|euros?|€|\$)`,
	`(?i)(\d+[\s,]*\d*)\s*(?:euros?|€|\$)`,
	`(?i)traitement[:\s]*(\d+[\s,]*\d*)`,
	`(?i)indemnité[:\s]*(\d+[\s,]*\d*)`,
)

var experiencePatterns = patterns.Compile(
	`(\d+)\s*(?:ans?|années?)\s*d['’]expérience`,
	`expérience[:\s]*(\d+)\s*(?:ans?|années?)`,
	`minimum\s*(\d+)\s*(?:ans?|années?)`,
	`au moins\s*(\d+)\s*(?:ans?|années?)`,
)

var experienceKeywords = []string{
	"débutant", "junior", "senior", "expérimenté",
	"sans expérience", "première expérience",
	"confirmé", "expert",
}

var qualificationPatterns = patterns.Compile(
	`[Dd]iplôme[:\s]*([^.]+)`,
	`[Ff]ormation[:\s]*([^.]+)`,
	`[Bb]ac\s*\+\s*(\d+)`,
	`[Nn]iveau[:\s]*([^.]+)`,
	`(?i)[Qq]ualifications?[:\s]*([^.]+)`,
	`(?i)[Cc]ompétences requises[:\s]*([^.]+)`,
)

var requirementPatterns = patterns.Compile(
	`[Pp]rofil recherché[:\s]*([^.]+)`,
	`[Ee]xigences[:\s]*([^.]+)`,
	`[Rr]equirements[:\s]*([^.]+)`,
	`[Cc]ritères[:\s]*([^.]+)`,
	`[Cc]onditions[:\s]*([^.]+)`,
)

var applicationPatterns = patterns.Compile(
	`[Cc]omment postuler[:\s]*([^.]+)`,
	`[Pp]rocédure[:\s]*([^.]+)`,
	`[Dd]ossier de candidature[:\s]*([^.]+)`,
	`[Ee]nvoyer[:\s]*([^.]+)`,
	`[Cc]andidatures?[:\s]*([^.]+)`,
)

var benefitsPatterns = patterns.Compile(
	`[Aa]vantages[:\s]*([^.]+)`,
	`[Bb]énéfices[:\s]*([^.]+)`,
	`[Cc]onditions de travail[:\s]*([^.]+)`,
	`[Oo]ffert[:\s]*([^.]+)`,
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// phonePatterns try country-code-specific formats before the generic
// international and local shapes.
var phonePatterns = patterns.Compile(
	`\+228\s*\d{2}\s*\d{2}\s*\d{2}\s*\d{2}`, // Togo
	`\+225\s*\d{2}\s*\d{2}\s*\d{2}\s*\d{2}`, // Côte d'Ivoire
	`\+229\s*\d{2}\s*\d{2}\s*\d{2}\s*\d{2}`, // Bénin
	`\+[\d\s\-()]{8,15}`,
	`\d{2}\s*\d{2}\s*\d{2}\s*\d{2}`,
)

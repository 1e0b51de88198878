// Package jobs defines the core record types shared across subsystems.
package jobs

import "time"

// Salary is the structured form of a raw salary mention.
type Salary struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
	Raw      string `json:"raw"`
}

// Currency values recognized by the normalizer. FCFA is the default for
// postings that name an amount without a currency marker.
const (
	CurrencyFCFA = "FCFA"
	CurrencyEUR  = "EUR"
	CurrencyUSD  = "USD"
)

// Salary period values. Monthly is the default.
const (
	PeriodMonthly = "mensuel"
	PeriodAnnual  = "annuel"
	PeriodDaily   = "journalier"
)

// ImageRef points at an image embedded in a posting.
type ImageRef struct {
	URL   string `json:"url"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// ContactInfo aggregates contact channels found in a posting.
type ContactInfo struct {
	Emails []string `json:"emails,omitempty"`
	Phones []string `json:"phones,omitempty"`
}

// Record is one job posting. The URL is its identity within a store;
// everything else is best-effort and may be absent.
type Record struct {
	URL       string    `json:"url"`
	ID        int       `json:"id,omitempty"`
	ScrapedAt time.Time `json:"scraped_at"`
	AddedAt   time.Time `json:"added_at,omitzero"`

	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`

	Company      *string `json:"company,omitempty"`
	Location     *string `json:"location,omitempty"`
	ContractType *string `json:"contract_type,omitempty"`
	Sector       *string `json:"sector,omitempty"`
	Category     *string `json:"category,omitempty"`

	SalaryRaw        *string `json:"salary_raw,omitempty"`
	SalaryNormalized *Salary `json:"salary_normalized,omitempty"`

	PublicationDate           *string `json:"publication_date"`
	PublicationDateNormalized *string `json:"publication_date_normalized,omitempty"`
	Deadline                  *string `json:"deadline,omitempty"`
	DeadlineNormalized        *string `json:"deadline_normalized,omitempty"`

	ExperienceLevel    *string      `json:"experience_level,omitempty"`
	Qualifications     *string      `json:"qualifications,omitempty"`
	Requirements       *string      `json:"requirements,omitempty"`
	ApplicationProcess *string      `json:"application_process,omitempty"`
	Benefits           *string      `json:"benefits,omitempty"`
	ContactInfo        *ContactInfo `json:"contact_info,omitempty"`

	Keywords []string          `json:"keywords,omitempty"`
	Images   []ImageRef        `json:"images,omitempty"`
	MetaInfo map[string]string `json:"meta_info,omitempty"`
}

// StoreMetadata describes a persisted record collection.
type StoreMetadata struct {
	TotalJobs      int       `json:"total_jobs"`
	LastUpdated    time.Time `json:"last_updated"`
	Source         string    `json:"source"`
	ScraperVersion string    `json:"scraper_version"`
}

// StoreFile is the on-disk envelope for the deduplicating store.
type StoreFile struct {
	Metadata StoreMetadata `json:"metadata"`
	Jobs     []Record      `json:"jobs"`
}

// StoreStats summarizes the in-memory collection.
type StoreStats struct {
	TotalJobs       int        `json:"total_jobs"`
	UniqueCompanies int        `json:"unique_companies"`
	UniqueLocations int        `json:"unique_locations"`
	LatestJob       *time.Time `json:"latest_job"`
}

// JobDetails is the structured-pass view of one posting's core facts.
// Every field is independently nullable.
type JobDetails struct {
	Entreprise      *string `json:"entreprise"`
	Ville           *string `json:"ville"`
	TypeDePoste     *string `json:"type_de_poste"`
	TypeDeContrat   *string `json:"type_de_contrat"`
	DateDeDemarrage *string `json:"date_de_demarrage"`
	PublicationDate *string `json:"publication_date,omitempty"`
}

// StructuredInfo is the enriched record produced by the post-processing
// pass. It lives independently of the store and is rebuilt on every run.
type StructuredInfo struct {
	URL                  string     `json:"url,omitempty"`
	Title                *string    `json:"title,omitempty"`
	JobDetails           JobDetails `json:"job_details"`
	RequiredSkills       []string   `json:"required_skills"`
	InternshipTasks      []string   `json:"internship_tasks"`
	ApplicationDeadline  *string    `json:"application_deadline"`
	ApplicationDocuments []string   `json:"application_documents"`
}

// StructuredFile is the on-disk envelope for the structured-info output.
type StructuredFile struct {
	Total int              `json:"total"`
	Jobs  []StructuredInfo `json:"jobs"`
}

// RunStats aggregates the outcome of one crawl run.
type RunStats struct {
	RunID        string     `json:"run_id"`
	PagesScraped int        `json:"pages_scraped"`
	TotalJobs    int        `json:"total_jobs"`
	NewJobs      int        `json:"new_jobs"`
	Errors       int        `json:"errors"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Store        StoreStats `json:"store"`
}

// Str returns a pointer to s, or nil when s is empty. Extractors use it to
// map "pattern not found" to an absent field.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StrVal dereferences p, returning "" for nil.
func StrVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tchluc/emploitogo-crawler/internal/jobs"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "Développeur   Web\n\t Senior", "Développeur Web Senior"},
		{"strips controls", "Comptable\x00\x1f confirmé", "Comptable confirmé"},
		{"trims", "  Lomé  ", "Lomé"},
		{"keeps hyphens", "Chef de projet - Lomé", "Chef de projet - Lomé"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"slash dmy", "25/12/2025", "2025-12-25"},
		{"dash dmy", "15-01-2026", "2026-01-15"},
		{"iso passthrough", "2025-12-25", "2025-12-25"},
		{"embedded in text", "clôture le 05/09/2025 au soir", "2025-09-05"},
		{"invalid month", "31/13/2025", ""},
		{"invalid day", "32/01/2025", ""},
		{"no date", "dès que possible", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Date(tt.in))
		})
	}
}

func TestSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want *jobs.Salary
	}{
		{
			name: "fcfa monthly",
			in:   "250 000 FCFA par mois",
			want: &jobs.Salary{Amount: 250000, Currency: jobs.CurrencyFCFA, Period: jobs.PeriodMonthly, Raw: "250 000 FCFA par mois"},
		},
		{
			name: "annual",
			in:   "3,000,000 FCFA par an",
			want: &jobs.Salary{Amount: 3000000, Currency: jobs.CurrencyFCFA, Period: jobs.PeriodAnnual, Raw: "3,000,000 FCFA par an"},
		},
		{
			name: "daily euro",
			in:   "150 € par jour",
			want: &jobs.Salary{Amount: 150, Currency: jobs.CurrencyEUR, Period: jobs.PeriodDaily, Raw: "150 € par jour"},
		},
		{
			name: "dollar",
			in:   "salaire de 2000 dollars",
			want: &jobs.Salary{Amount: 2000, Currency: jobs.CurrencyUSD, Period: jobs.PeriodMonthly, Raw: "salaire de 2000 dollars"},
		},
		{
			// "dans" contains "an" but must not flip the period to annual.
			name: "an needs word boundary",
			in:   "500000 FCFA dans la grille salariale, par mois",
			want: &jobs.Salary{Amount: 500000, Currency: jobs.CurrencyFCFA, Period: jobs.PeriodMonthly, Raw: "500000 FCFA dans la grille salariale, par mois"},
		},
		{name: "no digits", in: "no digits here", want: nil},
		{name: "empty", in: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Salary(tt.in))
		})
	}
}

func TestLocationAliases(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Lomé", Location("lome"))
	require.Equal(t, "Lomé", Location("LOMÉ"))
	require.Equal(t, "Sokodé", Location("sokode"))
	require.Equal(t, "Accra", Location("Accra")) // unknown passes through
}

func TestContractTypeAliases(t *testing.T) {
	t.Parallel()

	require.Equal(t, "CDI", ContractType("cdi"))
	require.Equal(t, "Temps partiel", ContractType("TEMPS PARTIEL"))
	require.Equal(t, "Alternance", ContractType("Alternance"))
}

func TestKeywordsVocabularyOrder(t *testing.T) {
	t.Parallel()

	desc := "Nous cherchons un profil autonome maîtrisant Docker, Python et SQL."
	require.Equal(t, []string{"python", "sql", "docker", "autonome"}, Keywords(desc))

	require.Nil(t, Keywords("aucune compétence listée"))
}

func TestApply(t *testing.T) {
	t.Parallel()

	scrapedAt := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	rec := jobs.Record{
		URL:             "https://www.emploitogo.info/offre-1/",
		ScrapedAt:       scrapedAt,
		Title:           jobs.Str("  Développeur   Python  "),
		Company:         jobs.Str("Togocom "),
		Location:        jobs.Str("lome"),
		ContractType:    jobs.Str("cdi"),
		Description:     jobs.Str("Maîtrise de python et docker exigée"),
		SalaryRaw:       jobs.Str("250 000 FCFA par mois"),
		PublicationDate: jobs.Str("25/12/2025"),
		Deadline:        jobs.Str("clôture le 15/01/2026"),
	}

	got := Apply(rec)

	require.Equal(t, "Développeur Python", jobs.StrVal(got.Title))
	require.Equal(t, "Togocom", jobs.StrVal(got.Company))
	require.Equal(t, "Lomé", jobs.StrVal(got.Location))
	require.Equal(t, "CDI", jobs.StrVal(got.ContractType))
	require.Equal(t, "2025-12-25", jobs.StrVal(got.PublicationDateNormalized))
	require.Equal(t, "2026-01-15", jobs.StrVal(got.DeadlineNormalized))
	require.Equal(t, []string{"python", "docker"}, got.Keywords)
	require.NotNil(t, got.SalaryNormalized)
	require.Equal(t, 250000, got.SalaryNormalized.Amount)

	// raw fields survive normalization
	require.Equal(t, "25/12/2025", jobs.StrVal(got.PublicationDate))
	require.Equal(t, "250 000 FCFA par mois", jobs.StrVal(got.SalaryRaw))
	require.Equal(t, scrapedAt, got.ScrapedAt)
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	rec := jobs.Record{
		URL:             "https://www.emploitogo.info/offre-2/",
		Title:           jobs.Str("Comptable  senior"),
		Location:        jobs.Str("kara"),
		SalaryRaw:       jobs.Str("150000 FCFA"),
		PublicationDate: jobs.Str("01/02/2026"),
	}

	once := Apply(rec)
	twice := Apply(once)
	require.Equal(t, once, twice)
}

func TestApplyLeavesAbsentFieldsNil(t *testing.T) {
	t.Parallel()

	got := Apply(jobs.Record{URL: "https://www.emploitogo.info/offre-3/"})
	require.Nil(t, got.Title)
	require.Nil(t, got.SalaryNormalized)
	require.Nil(t, got.PublicationDateNormalized)
	require.Nil(t, got.Keywords)
}

package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/tchluc/emploitogo-crawler/internal/jobs"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const detailPage = `<html><body>
<article>
 <header class="entry-header">
   <h1 class="entry-title">Togocom recrute un Développeur Web</h1>
   <div class="entry-meta">
     <span class="meta-date">25/12/2025</span>
     <span class="meta-firstcat">Emploi Togo</span>
     <span class="meta-author">admin</span>
   </div>
 </header>
 <div class="entry-content">
   <p>La société Togocom recherche un développeur web basé à Lomé.</p>
   <p>Contrat : CDI dans le secteur Informatique.</p>
   <p>Salaire : 250 000 FCFA par mois. Minimum 3 ans d'expérience.</p>
   <p>Diplôme: Licence en informatique requise.</p>
   <p>Date limite: 15/01/2026 au soir.</p>
   <p>Comment postuler: envoyez votre CV à recrutement@togocom.tg ou appelez le +228 90 12 34 56</p>
   <img src="/images/logo.png" alt="Logo" title="Togocom">
 </div>
</article>
</body></html>`

func TestJobFullPage(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, detailPage)
	scrapedAt := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	rec := Job(doc, "https://www.emploitogo.info/offre-1/", scrapedAt)

	require.Equal(t, "https://www.emploitogo.info/offre-1/", rec.URL)
	require.Equal(t, scrapedAt, rec.ScrapedAt)
	require.Equal(t, "Togocom recrute un Développeur Web", jobs.StrVal(rec.Title))
	require.Equal(t, "Togocom", jobs.StrVal(rec.Company))
	require.Equal(t, "Lomé", jobs.StrVal(rec.Location))
	require.Equal(t, "CDI", jobs.StrVal(rec.ContractType))
	require.Equal(t, "Informatique", jobs.StrVal(rec.Sector))
	require.Equal(t, "Emploi Togo", jobs.StrVal(rec.Category))
	require.Equal(t, "25/12/2025", jobs.StrVal(rec.PublicationDate))
	require.Equal(t, "15/01/2026", jobs.StrVal(rec.Deadline))
	require.Equal(t, "250 000 FCFA", jobs.StrVal(rec.SalaryRaw))
	require.Equal(t, "3 ans d'expérience", jobs.StrVal(rec.ExperienceLevel))
	require.Equal(t, "Licence en informatique requise", jobs.StrVal(rec.Qualifications))
	require.Contains(t, jobs.StrVal(rec.ApplicationProcess), "envoyez votre CV")
	require.NotNil(t, rec.Description)

	require.NotNil(t, rec.ContactInfo)
	require.Equal(t, []string{"recrutement@togocom.tg"}, rec.ContactInfo.Emails)
	require.Contains(t, rec.ContactInfo.Phones, "+228 90 12 34 56")

	require.Equal(t, map[string]string{"author": "admin"}, rec.MetaInfo)

	require.Len(t, rec.Images, 1)
	require.Equal(t, jobs.ImageRef{
		URL:   "https://www.emploitogo.info/images/logo.png",
		Alt:   "Logo",
		Title: "Togocom",
	}, rec.Images[0])
}

func TestTitleSelectorOrder(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<html><body>
		<h1>Titre générique</h1>
		<h1 class="entry-title">Titre du poste</h1>
	</body></html>`)
	require.Equal(t, "Titre du poste", jobs.StrVal(Title(doc)))
}

func TestDescriptionPrefersExcerpt(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<html><body>
		<p class="entry-excerpt">Résumé court de l'offre</p>
		<div class="entry-content">Contenu complet beaucoup plus long de la page</div>
	</body></html>`)
	require.Equal(t, "Résumé court de l'offre", jobs.StrVal(Description(doc)))
}

func TestDescriptionPreviewTruncates(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("é", 400)
	doc := parseHTML(t, `<html><body><div class="entry-content">`+body+`</div></body></html>`)

	got := jobs.StrVal(Description(doc))
	require.Equal(t, strings.Repeat("é", 300)+"...", got)
}

func TestDescriptionShortBodyKeptWhole(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<html><body><div class="entry-content">Texte court.</div></body></html>`)
	require.Equal(t, "Texte court.", jobs.StrVal(Description(doc)))
}

func TestCategoryDefault(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<html><body><p>rien</p></body></html>`)
	require.Equal(t, "Emploi Afrique", jobs.StrVal(Category(doc)))
}

func TestCompanyPatternOrderAndValidation(t *testing.T) {
	t.Parallel()

	// the specific pattern wins over the generic "X recrute"
	got := Company("La société Togocom recherche un profil. SopraBanking recrute aussi.")
	require.Equal(t, "Togocom", jobs.StrVal(got))

	require.Equal(t, "SopraBanking", jobs.StrVal(Company("L'entreprise SopraBanking recrute un analyste")))

	// a too-short candidate is rejected and later patterns get a chance
	require.Nil(t, Company("La société X recherche"))
	require.Nil(t, Company("aucune mention utile"))
}

func TestCompanyStripsLeadingArticle(t *testing.T) {
	t.Parallel()

	got := Company("Le groupe la Banque Atlantique recrute des caissiers")
	require.Equal(t, "Banque Atlantique", jobs.StrVal(got))
}

func TestLocationGazetteer(t *testing.T) {
	t.Parallel()

	// pattern capture validated against the gazetteer
	require.Equal(t, "Kara", jobs.StrVal(Location("Poste basé à Kara pour six mois")))

	// capitalized non-city captures are rejected
	require.Nil(t, Location("Poste basé à Paris pour six mois"))

	// fallback: lowercase mention anywhere in the text
	require.Equal(t, "Sokodé", jobs.StrVal(Location("télétravail possible depuis sokodé uniquement")))
}

func TestContractTypeOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, "CDD", jobs.StrVal(ContractType("Nous proposons un CDD de 12 mois")))
	require.Equal(t, "Stage", jobs.StrVal(ContractType("stage de fin d'études")))
	require.Nil(t, ContractType("poste permanent"))
}

func TestRequirementsJoinCap(t *testing.T) {
	t.Parallel()

	text := "Profil recherché: dynamique et motivé. Exigences: permis B. Critères: disponibilité immédiate."
	got := Requirements(text)
	// capped at two mentions, pattern order
	require.Equal(t, "dynamique et motivé | permis B", jobs.StrVal(got))
}

func TestContactsNilWhenEmpty(t *testing.T) {
	t.Parallel()

	require.Nil(t, Contacts("texte sans coordonnées utiles"))
}

func TestImagesCapAndOrder(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<html><body><div class="entry-content">`)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		b.WriteString(`<img src="/img/` + name + `.png">`)
	}
	b.WriteString(`</div></body></html>`)

	images := Images(parseHTML(t, b.String()), "https://www.emploitogo.info/offre-1/")
	require.Len(t, images, 5)
	require.Equal(t, "https://www.emploitogo.info/img/a.png", images[0].URL)
	require.Equal(t, "https://www.emploitogo.info/img/e.png", images[4].URL)
}

const listingPage = `<html><body>
<div class="posts">
  <article class="post-item">
    <h2 class="entry-title"><a href="/offre-1/">Offre 1</a></h2>
  </article>
  <article class="post-item">
    <h2 class="entry-title"><a href="https://www.emploitogo.info/offre-2/">Offre 2</a></h2>
  </article>
  <article class="post-item">
    <h2 class="entry-title"><a href="/offre-1/">Offre 1 (repost)</a></h2>
  </article>
  <article class="post-item">
    <h2 class="entry-title">Sans lien</h2>
  </article>
</div>
<div class="pages-numbers">
  <a class="pagi-item" href="/emploitogo/page/1/">1</a>
  <a class="pagi-item" href="/emploitogo/page/2/">2</a>
  <a class="pagi-item-next" href="/emploitogo/page/2/">Suivant</a>
</div>
</body></html>`

func TestJobLinks(t *testing.T) {
	t.Parallel()

	links := JobLinks(parseHTML(t, listingPage), "https://www.emploitogo.info")
	require.Equal(t, []string{
		"https://www.emploitogo.info/offre-1/",
		"https://www.emploitogo.info/offre-2/",
	}, links)
}

func TestNextPageURL(t *testing.T) {
	t.Parallel()

	next := NextPageURL(parseHTML(t, listingPage), "https://www.emploitogo.info")
	require.Equal(t, "https://www.emploitogo.info/emploitogo/page/2/", next)

	require.Empty(t, NextPageURL(parseHTML(t, `<html><body><p>fin</p></body></html>`), "https://www.emploitogo.info"))
}

func TestPaginationURLs(t *testing.T) {
	t.Parallel()

	pages := PaginationURLs(parseHTML(t, listingPage), "https://www.emploitogo.info")
	require.Equal(t, []string{
		"https://www.emploitogo.info/emploitogo/page/1/",
		"https://www.emploitogo.info/emploitogo/page/2/",
	}, pages)
}

package patterns

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstPrefersEarlierPatterns(t *testing.T) {
	t.Parallel()

	chain := Compile(
		`La société (.+?) recherche`,
		`(.+?) recrute`,
	)

	// Both patterns match; the earlier one must win.
	got, ok := chain.First("La société Togocom recherche un technicien. Togocom recrute.")
	require.True(t, ok)
	require.Equal(t, "Togocom", got)
}

func TestFirstFallsThroughToLaterPatterns(t *testing.T) {
	t.Parallel()

	chain := Compile(
		`La société (.+?) recherche`,
		`(.+?) recrute`,
	)

	got, ok := chain.First("ACME Corp recrute un comptable")
	require.True(t, ok)
	require.Equal(t, "ACME Corp", got)
}

func TestFirstWholeMatchWithoutCaptureGroup(t *testing.T) {
	t.Parallel()

	chain := Compile(`\d{2}/\d{2}/\d{4}`)
	got, ok := chain.First("publié le 25/12/2025 à Lomé")
	require.True(t, ok)
	require.Equal(t, "25/12/2025", got)
}

func TestFirstNoMatch(t *testing.T) {
	t.Parallel()

	chain := Compile(`qualification`, `diplôme`)
	got, ok := chain.First("rien d'utile ici")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestFirstFullIgnoresCaptureGroups(t *testing.T) {
	t.Parallel()

	chain := Compile(`(\d+)\s*FCFA`)
	got, ok := chain.FirstFull("salaire de 250000 FCFA par mois")
	require.True(t, ok)
	require.Equal(t, "250000 FCFA", got)
}

func TestAllKeepsPatternThenTextOrder(t *testing.T) {
	t.Parallel()

	chain := Compile(
		`niveau (\w+)`,
		`bac\+(\d)`,
	)
	got := chain.All("niveau licence ou bac+3, niveau master ou bac+5")
	require.Equal(t, []string{"licence", "master", "3", "5"}, got)
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	t.Parallel()

	got := Dedupe([]string{"a", "b", "a", "c", "b"})
	require.Equal(t, []string{"a", "b", "c"}, got)

	require.Empty(t, Dedupe(nil))
}

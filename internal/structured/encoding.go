package structured

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// encodingFixes maps mis-decoded byte sequences (UTF-8 read as Latin-1,
// seen throughout the source corpus) back to the intended characters.
// Order matters: multi-character sequences starting with 'Ã' or 'â' must
// be replaced before the single-character fallbacks at the end.
var encodingFixes = []struct{ wrong, right string }{
	{"Ã©", "é"}, {"Ã¨", "è"}, {"Ãª", "ê"}, {"Ã ", "à"}, {"Ã¢", "â"},
	{"Ã»", "û"}, {"Ã¼", "ü"}, {"Ã§", "ç"}, {"Ã«", "ë"}, {"Ã¯", "ï"}, {"Ã´", "ô"},
	{"â€™", "'"}, {"â€“", "-"}, {"â€œ", `"`}, {"â€˜", "'"}, {"â€¢", "-"},
	{"â€¦", "..."}, {"â‚¬", "€"}, {"â€", `"`}, {"Â", ""}, {"Ã", "à"}, {"â", "à"},
}

// FixEncoding repairs known mojibake sequences and then applies Unicode
// compatibility composition, so that pattern matching sees clean text.
func FixEncoding(text string) string {
	if text == "" {
		return text
	}
	for _, fix := range encodingFixes {
		text = strings.ReplaceAll(text, fix.wrong, fix.right)
	}
	return norm.NFKC.String(text)
}

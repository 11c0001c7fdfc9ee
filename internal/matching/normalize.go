package matching

import "strings"

// Legal suffixes stripped before comparing company names.
var legalSuffixes = []string{
	"incorporated", "corporation", "limited", "company",
	"inc", "corp", "ltd", "llc", "gmbh", "co",
}

// NormalizeCompanyName lower-cases, strips punctuation and legal suffixes and
// collapses whitespace so "Acme Corp" and "ACME Corporation" compare equal.
func NormalizeCompanyName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	out := make([]string, 0, len(words))
	for _, w := range words {
		if isLegalSuffix(w) {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func isLegalSuffix(word string) bool {
	for _, s := range legalSuffixes {
		if word == s {
			return true
		}
	}
	return false
}

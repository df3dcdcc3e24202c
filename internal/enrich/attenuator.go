package enrich

import (
	"regexp"
	"strings"
)

// noiseVocabulary matches payment-rail keywords that carry no merchant
// information, as whole words only
var noiseVocabulary = regexp.MustCompile(`(?i)\b(DEBIT|DBT|CREDIT|PMT|PAYMENT|ACH)\b`)

// NoiseAttenuator removes payment-rail keywords and duplicate tokens from
// descriptions. Callers must not depend on token order after deduplication;
// the current implementation keeps first occurrences but that is not part of
// the contract.
type NoiseAttenuator struct{}

// NewNoiseAttenuator creates a NoiseAttenuator
func NewNoiseAttenuator() *NoiseAttenuator {
	return &NoiseAttenuator{}
}

// Attenuate strips rail keywords, deduplicates residual tokens, and rejoins
// with single spaces
func (na *NoiseAttenuator) Attenuate(desc string) string {
	cleaned := noiseVocabulary.ReplaceAllString(desc, "")

	tokens := strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == ' ' || r == '*'
	})

	seen := make(map[string]bool, len(tokens))
	deduped := tokens[:0]
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		deduped = append(deduped, token)
	}

	return strings.Join(deduped, " ")
}

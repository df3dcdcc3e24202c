package enrich

import (
	"strings"
)

// providerRule describes one known payment processor: the substrings that
// identify it and the extra tokens to clear once identified.
type providerRule struct {
	// Provider is the canonical processor name recorded on a match
	Provider string

	// MatchStrings identify the processor when any occurs as an ordinal,
	// case-sensitive substring of the description
	MatchStrings []string

	// ClearableTokens are removed from the tokenized description along with
	// the match strings once the rule fires
	ClearableTokens []string
}

// defaultProviderRules is the fixed, ordered rule table for known
// point-of-sale processors and payment facilitators
var defaultProviderRules = []providerRule{
	{
		Provider:        "SQUARE",
		MatchStrings:    []string{"SQ *", "SQU*", "SQUARE*"},
		ClearableTokens: []string{"SQ", "GOSQ COM", "GOSQ.COM", "GOSQ"},
	},
	{
		Provider:        "APPLE PAY",
		MatchStrings:    []string{"APLPAY", "APL*"},
		ClearableTokens: []string{"APL"},
	},
	{
		Provider:        "TOAST",
		MatchStrings:    []string{"TST*"},
		ClearableTokens: []string{"TST"},
	},
	{
		Provider:        "PAYPAL",
		MatchStrings:    []string{"PP*", "PAYPAL *", "PAYPAL"},
		ClearableTokens: []string{"PP", "PAYPAL", "INST", "XFER", "TRANSFER"},
	},
	{
		Provider:        "SHOPIFY",
		MatchStrings:    []string{"SP *", "SP*", "SHOP*"},
		ClearableTokens: []string{"SP", "SHOPIFY"},
	},
	{
		Provider:        "CLOVER",
		MatchStrings:    []string{"CLV*", "CLV_", "CLOVER*"},
		ClearableTokens: []string{"CLOVER"},
	},
	{
		Provider:        "KLARNA",
		MatchStrings:    []string{"KLN*", "KLARNA*"},
		ClearableTokens: []string{"KLARNA"},
	},
	{
		Provider:        "AFFIRM",
		MatchStrings:    []string{"AFF*", "AFFIRM*"},
		ClearableTokens: []string{"AFFIRM"},
	},
	{
		Provider:        "AFTERPAY",
		MatchStrings:    []string{"APY*", "AFTERPAY*"},
		ClearableTokens: []string{"AFTERPAY"},
	},
	{
		Provider:        "ZIP (QUADPAY)",
		MatchStrings:    []string{"ZIP*", "QUADPAY*"},
		ClearableTokens: []string{"ZIP", "QUADPAY"},
	},
	{
		Provider:     "FIRST SOURCE PAYMENTS",
		MatchStrings: []string{"FSP*"},
	},
	{
		Provider:     "PRIORITY PAYMENT SYSTEMS",
		MatchStrings: []string{"PTI*"},
	},
	{
		Provider:     "BRAINTREE PAYMENT",
		MatchStrings: []string{"BT*"},
	},
	{
		Provider:     "INTEGRATED CREDIT PROCESSING",
		MatchStrings: []string{"ICP*"},
	},
	{
		Provider:     "DIGITAL RIVER",
		MatchStrings: []string{"DRI*"},
	},
	{
		Provider:        "AMAZON PAYMENTS",
		MatchStrings:    []string{"AMZ*"},
		ClearableTokens: []string{"AMAZON PAYMENTS"},
	},
	{
		Provider:     "ADYEN",
		MatchStrings: []string{"ADY*"},
	},
	{
		Provider:     "STRIPE",
		MatchStrings: []string{"STL*"},
	},
	{
		Provider:     "WEPAY",
		MatchStrings: []string{"WPY*"},
	},
	{
		Provider:     "TELEFLORA",
		MatchStrings: []string{"TFL*"},
	},
	{
		Provider:     "VERIZON CONNECTED SERVICES",
		MatchStrings: []string{"VSC*", "VZWRLSS*", "VZC*"},
	},
	{
		Provider:        "BLUESNAP",
		MatchStrings:    []string{"BB*", "BB *", "BLUESNAP*"},
		ClearableTokens: []string{"BB"},
	},
	{
		Provider:        "FLIPDISH",
		MatchStrings:    []string{"+35316972801"},
		ClearableTokens: []string{"35316972801"},
	},
	{
		Provider:     "VENMO",
		MatchStrings: []string{"VENMO"},
	},
}

// PaymentProviderFinder rule-matches known processor prefixes in merchant
// descriptions, records the provider names, and strips the matched tokens.
type PaymentProviderFinder struct {
	rules []providerRule
}

// NewPaymentProviderFinder creates a finder with the default rule table
func NewPaymentProviderFinder() *PaymentProviderFinder {
	return &PaymentProviderFinder{
		rules: defaultProviderRules,
	}
}

// Identify returns the provider names whose rules match desc and the
// description with matched tokens removed. More than one provider may match.
// If no rule matches, the input is returned unchanged with a nil provider
// list.
func (pf *PaymentProviderFinder) Identify(desc string) ([]string, string) {
	var providers []string
	var toClear []string

	for _, rule := range pf.rules {
		matched := false
		for _, m := range rule.MatchStrings {
			if strings.Contains(desc, m) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		providers = append(providers, rule.Provider)
		toClear = append(toClear, rule.MatchStrings...)
		toClear = append(toClear, rule.ClearableTokens...)
	}

	if len(toClear) == 0 {
		return nil, desc
	}

	clearable := make(map[string]bool, len(toClear))
	for _, c := range toClear {
		clearable[c] = true
	}

	tokens := strings.Fields(desc)
	kept := tokens[:0]
	for _, token := range tokens {
		if clearable[token] {
			continue
		}
		kept = append(kept, token)
	}

	return providers, strings.Join(kept, " ")
}

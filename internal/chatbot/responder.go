package chatbot

import "strings"

type rule struct {
	match func(lower string) bool
	key   TemplateKey
}

func containsAny(words ...string) func(string) bool {
	return func(lower string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
}

// rules are evaluated top to bottom; the first match wins.
var rules = []rule{
	{match: containsAny("package", "plan", "tier"), key: TemplatePackages},
	{match: containsAny("scor", "ai lead"), key: TemplateScoring},
	{match: containsAny("demo", "book", "schedule"), key: TemplateDemo},
	{match: containsAny("pric", "cost", "fee", "₹"), key: TemplatePricing},
	{match: containsAny("lead", "capture", "collect"), key: TemplateLead},
}

// Match returns the template key selected for input.
func Match(input string) TemplateKey {
	lower := strings.ToLower(input)
	for _, r := range rules {
		if r.match(lower) {
			return r.key
		}
	}
	return TemplateDefault
}

// Respond returns the canned reply for input. It never returns an empty string.
func Respond(input string) string {
	return Template(Match(input))
}

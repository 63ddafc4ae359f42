package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond_Scenarios(t *testing.T) {
	cases := []struct {
		in   string
		want TemplateKey
	}{
		{"How does AI scoring work?", TemplateScoring},
		{"Book a demo", TemplateDemo},
		{"asdkjasd", TemplateDefault},
		{"What packages do you offer?", TemplatePackages},
		{"What's the pricing?", TemplatePricing},
		{"How does lead capture work?", TemplateLead},
		{"Is it ₹50k?", TemplatePricing},
		{"any setup FEE?", TemplatePricing},
		{"can we SCHEDULE a call", TemplateDemo},
		{"tell me about AI LEAD features", TemplateScoring},
		{"do you collect emails", TemplateLead},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Match(tc.in))
			assert.Equal(t, Template(tc.want), Respond(tc.in))
		})
	}
}

func TestRespond_PriorityIsFirstMatch(t *testing.T) {
	// packages (group 1) wins over pricing (group 4)
	assert.Equal(t, Template(TemplatePackages), Respond("what plan pricing do you have"))
	// scoring (group 2) wins over demo and lead
	assert.Equal(t, TemplateScoring, Match("book a demo of lead scoring"))
	// demo (group 3) wins over pricing
	assert.Equal(t, TemplateDemo, Match("demo cost"))
	// "ai lead" contains "lead" but scoring is evaluated first
	assert.Equal(t, TemplateScoring, Match("ai lead"))
}

func TestRespond_NeverEmpty(t *testing.T) {
	for _, in := range []string{"x", "   ", "hello there", "🤖", "PLAN"} {
		require.NotEmpty(t, Respond(in))
	}
}

func TestTemplate_UnknownKeyFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Template(TemplateDefault), Template(TemplateKey("nope")))
}

func TestRules_CoverEveryNonDefaultTemplate(t *testing.T) {
	seen := map[TemplateKey]bool{}
	for _, r := range rules {
		seen[r.key] = true
		require.NotEmpty(t, templates[r.key], "rule %q has no template", r.key)
	}
	for k := range templates {
		if k == TemplateDefault {
			continue
		}
		assert.True(t, seen[k], "template %q unreachable", k)
	}
}

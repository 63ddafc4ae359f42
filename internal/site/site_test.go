package site

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatINR(t *testing.T) {
	cases := map[string]string{
		"0":          "₹0",
		"999":        "₹999",
		"1000":       "₹1,000",
		"30000":      "₹30,000",
		"100000":     "₹1,00,000",
		"240000":     "₹2,40,000",
		"12345678":   "₹1,23,45,678",
		"1000000000": "₹1,00,00,00,000",
		"1500.5":     "₹1,500.50",
		"-25000":     "-₹25,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatINR(decimal.RequireFromString(in)), in)
	}
}

func TestParseBilling(t *testing.T) {
	for in, want := range map[string]Billing{"": Monthly, "monthly": Monthly, "Annual": Annual, "yearly": Annual} {
		got, err := ParseBilling(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseBilling("weekly")
	require.ErrorIs(t, err, ErrBilling)
}

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	c := loadCatalog(t)
	require.Len(t, c.Plans, 3)
	assert.Len(t, c.Home.Stats, 4)
	assert.Len(t, c.Home.Features, 6)
	assert.Len(t, c.Home.Pipeline, 5)
	assert.Len(t, c.Home.TrustedCompanies, 8)
	assert.Len(t, c.FAQs, 6)
	assert.Len(t, c.Packages, 3)
	assert.Len(t, c.AddOns, 4)
	assert.Len(t, c.HowItWorks, 5)
	assert.Len(t, c.CaseStudies, 3)
	assert.Len(t, c.ROIStats, 4)

	ent, ok := c.Plan("enterprise")
	require.True(t, ok)
	assert.True(t, ent.Custom())
	assert.Equal(t, "₹3L–₹10L", ent.CustomLabel)
}

func TestParse_RejectsBadAmount(t *testing.T) {
	_, err := Parse([]byte("plans:\n  - name: X\n    monthly: {setup: abc, price: \"1\"}\n"))
	require.Error(t, err)
}

func TestPricing_Monthly(t *testing.T) {
	page := loadCatalog(t).Pricing(Monthly)
	require.Len(t, page.Plans, 3)

	starter, growth, ent := page.Plans[0], page.Plans[1], page.Plans[2]
	assert.Equal(t, "₹50,000", starter.Price)
	assert.Equal(t, "₹30,000", starter.Setup)
	assert.True(t, starter.PerMonth)
	assert.Zero(t, starter.Discount)
	assert.Empty(t, starter.Saving)

	assert.Equal(t, "₹1,00,000", growth.Price)
	assert.True(t, growth.Highlight)
	require.NotNil(t, growth.Amount)
	assert.EqualValues(t, 100000, *growth.Amount)

	assert.True(t, ent.Custom)
	assert.False(t, ent.PerMonth)
	assert.Equal(t, "₹3L–₹10L", ent.Price)
	assert.Equal(t, "Custom", ent.Setup)
	assert.Equal(t, "Contact Sales", ent.CTA)
	assert.Nil(t, ent.Amount)
}

func TestPricing_Annual(t *testing.T) {
	page := loadCatalog(t).Pricing(Annual)
	growth := page.Plans[1]
	assert.Equal(t, "₹80,000", growth.Price)
	assert.Equal(t, "₹40,000", growth.Setup)
	assert.Equal(t, 20, growth.Discount)
	assert.Equal(t, "₹2,40,000", growth.Saving)

	starter := page.Plans[0]
	assert.Equal(t, "₹1,20,000", starter.Saving)

	ent := page.Plans[2]
	assert.Zero(t, ent.Discount)
	assert.Empty(t, ent.Saving)
}

func TestServices(t *testing.T) {
	page := loadCatalog(t).Services()
	require.Len(t, page.Packages, 3)
	assert.Equal(t, "₹1,00,000", page.Packages[1].Monthly)
	assert.Equal(t, "Most Popular", page.Packages[1].Badge)
	assert.Equal(t, "Custom", page.Packages[2].Setup)

	require.Len(t, page.AddOns, 4)
	assert.Equal(t, "₹10,000 – ₹50,000", page.AddOns[0].Price)
	assert.Equal(t, "₹20,000", page.AddOns[1].Price)
	assert.Equal(t, "/month", page.AddOns[1].Period)
}

func TestTeaser(t *testing.T) {
	teaser := loadCatalog(t).Teaser()
	require.Len(t, teaser, 3)
	for _, p := range teaser {
		assert.Equal(t, "View Details", p.CTA)
		assert.Nil(t, p.Features)
	}
}

func TestPlaceholders(t *testing.T) {
	ph, err := LoadPlaceholders()
	require.NoError(t, err)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	posts := ph.BlogPosts(now)
	require.Len(t, posts, 6)
	assert.Equal(t, "How AI Lead Scoring is Revolutionizing B2B Sales in India", posts[0].Title)
	assert.Equal(t, now.AddDate(0, 0, -2), posts[0].Date)
	assert.Equal(t, now.AddDate(0, 0, -18), posts[5].Date)
	for i := 1; i < len(posts); i++ {
		assert.True(t, posts[i].Date.Before(posts[i-1].Date), "newest first")
	}

	article := ph.BlogPost(now)
	assert.True(t, strings.HasPrefix(article.Content, "## The Rise of AI in Indian B2B Sales"))
	assert.Contains(t, article.Tags, "India")

	list := ph.Testimonials()
	require.Len(t, list, 6)
	assert.Equal(t, "Rajesh Mehta", list[0].ClientName)
	assert.Equal(t, 4, list[3].Rating)

	list[0].ClientName = "changed"
	assert.Equal(t, "Rajesh Mehta", ph.Testimonials()[0].ClientName)
}

package site

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Billing string

const (
	Monthly Billing = "monthly"
	Annual  Billing = "annual"

	customSetup = "Custom"
)

var ErrBilling = errors.New("billing must be monthly or annual")

// ParseBilling accepts "", "monthly", "annual" and "yearly".
func ParseBilling(s string) (Billing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly":
		return Monthly, nil
	case "annual", "yearly":
		return Annual, nil
	}
	return "", ErrBilling
}

// PlanPrice is a plan as shown on the pricing page for one billing choice.
type PlanPrice struct {
	Name      string         `json:"name"`
	Subtitle  string         `json:"subtitle"`
	Users     string         `json:"users"`
	Highlight bool           `json:"highlight"`
	Custom    bool           `json:"custom"`
	Price     string         `json:"price"`
	PerMonth  bool           `json:"per_month"`
	Setup     string         `json:"setup"`
	Amount    *int64         `json:"amount,omitempty"`
	SetupFee  *int64         `json:"setup_fee,omitempty"`
	Discount  int            `json:"discount_percent,omitempty"`
	Saving    string         `json:"yearly_saving,omitempty"`
	CTA       string         `json:"cta"`
	Features  []FeatureGroup `json:"features,omitempty"`
}

type PricingPage struct {
	Billing Billing     `json:"billing"`
	Plans   []PlanPrice `json:"plans"`
	FAQs    []FAQ       `json:"faqs"`
}

func (p Plan) tier(b Billing) Tier {
	if b == Annual {
		return p.Annual
	}
	return p.Monthly
}

// Price selects the tier for b. The yearly saving compares twelve annual-rate
// months against twelve monthly-rate months.
func (p Plan) Price(b Billing, withFeatures bool) PlanPrice {
	out := PlanPrice{
		Name:      p.Name,
		Subtitle:  p.Subtitle,
		Users:     p.Users,
		Highlight: p.Highlight,
		Custom:    p.Custom(),
		CTA:       "Get Started",
	}
	if withFeatures {
		out.Features = p.Features
	}
	if p.Custom() {
		out.Price = p.CustomLabel
		out.Setup = customSetup
		out.CTA = "Contact Sales"
		return out
	}

	t := p.tier(b)
	amount, setup := t.Price.IntPart(), t.Setup.IntPart()
	out.Price = FormatINR(t.Price)
	out.Setup = FormatINR(t.Setup)
	out.PerMonth = true
	out.Amount = &amount
	out.SetupFee = &setup

	if b == Annual && p.Monthly.Price.IsPositive() {
		diff := p.Monthly.Price.Sub(p.Annual.Price)
		if diff.IsPositive() {
			out.Discount = int(diff.Div(p.Monthly.Price).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
			out.Saving = FormatINR(diff.Mul(decimal.NewFromInt(12)))
		}
	}
	return out
}

func (c *Catalog) Pricing(b Billing) PricingPage {
	page := PricingPage{Billing: b, FAQs: c.FAQs}
	for _, p := range c.Plans {
		page.Plans = append(page.Plans, p.Price(b, true))
	}
	return page
}

// Teaser is the short plan strip on the home page, always at monthly rates.
func (c *Catalog) Teaser() []PlanPrice {
	out := make([]PlanPrice, 0, len(c.Plans))
	for _, p := range c.Plans {
		pp := p.Price(Monthly, false)
		pp.CTA = "View Details"
		out = append(out, pp)
	}
	return out
}

type ServicePackage struct {
	Package
	Setup   string `json:"setup"`
	Monthly string `json:"monthly"`
}

type AddOnView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Period      string `json:"period"`
}

func (a AddOn) View() AddOnView {
	price := FormatINR(a.Min)
	if a.Max.Valid {
		price += " – " + FormatINR(a.Max.Decimal)
	}
	return AddOnView{Name: a.Name, Description: a.Description, Price: price, Period: a.Period}
}

type ServicesPage struct {
	Packages []ServicePackage `json:"packages"`
	AddOns   []AddOnView      `json:"addons"`
}

func (c *Catalog) Services() ServicesPage {
	var page ServicesPage
	for _, pkg := range c.Packages {
		plan, _ := c.Plan(pkg.Plan)
		pp := plan.Price(Monthly, false)
		page.Packages = append(page.Packages, ServicePackage{Package: pkg, Setup: pp.Setup, Monthly: pp.Price})
	}
	for _, a := range c.AddOns {
		page.AddOns = append(page.AddOns, a.View())
	}
	return page
}

// Package site holds the static page data of the marketing site: plans,
// services, process steps, case studies and the placeholder records shown
// when the content store is empty.
package site

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Feature struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Step struct {
	Num         string   `yaml:"num" json:"num"`
	Title       string   `yaml:"title" json:"title"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle,omitempty"`
	Description string   `yaml:"description" json:"description"`
	Details     []string `yaml:"details" json:"details,omitempty"`
}

type Home struct {
	Headline         string    `yaml:"headline" json:"headline"`
	Tagline          string    `yaml:"tagline" json:"tagline"`
	Stats            []Stat    `yaml:"stats" json:"stats"`
	Features         []Feature `yaml:"features" json:"features"`
	Pipeline         []Step    `yaml:"pipeline" json:"pipeline"`
	TrustedCompanies []string  `yaml:"trusted_companies" json:"trusted_companies"`
}

type FeatureGroup struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

// Tier is one billing option of a plan, in whole rupees.
type Tier struct {
	Setup decimal.Decimal
	Price decimal.Decimal
}

type rawTier struct {
	Setup string `yaml:"setup"`
	Price string `yaml:"price"`
}

type Plan struct {
	Name      string
	Subtitle  string
	Users     string
	Highlight bool
	// CustomLabel is set for plans priced on request.
	CustomLabel string
	Monthly     Tier
	Annual      Tier
	Features    []FeatureGroup
}

func (p Plan) Custom() bool { return p.CustomLabel != "" }

type rawPlan struct {
	Name        string         `yaml:"name"`
	Subtitle    string         `yaml:"subtitle"`
	Users       string         `yaml:"users"`
	Highlight   bool           `yaml:"highlight"`
	CustomLabel string         `yaml:"custom_label"`
	Monthly     rawTier        `yaml:"monthly"`
	Annual      rawTier        `yaml:"annual"`
	Features    []FeatureGroup `yaml:"features"`
}

type FAQ struct {
	Q string `yaml:"q" json:"question"`
	A string `yaml:"a" json:"answer"`
}

type Package struct {
	Plan     string   `yaml:"plan" json:"plan"`
	Subtitle string   `yaml:"subtitle" json:"subtitle"`
	Users    string   `yaml:"users" json:"users"`
	Badge    string   `yaml:"badge" json:"badge,omitempty"`
	Features []string `yaml:"features" json:"features"`
}

// AddOn is priced at Min, or in the range Min..Max when Max is set.
type AddOn struct {
	Name        string
	Description string
	Min         decimal.Decimal
	Max         decimal.NullDecimal
	Period      string
}

type rawAddOn struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Min         string `yaml:"min"`
	Max         string `yaml:"max"`
	Period      string `yaml:"period"`
}

type Result struct {
	Label  string `yaml:"label" json:"label"`
	Before string `yaml:"before" json:"before"`
	After  string `yaml:"after" json:"after"`
	Change string `yaml:"change" json:"change"`
}

type CaseStudy struct {
	Company   string   `yaml:"company" json:"company"`
	Industry  string   `yaml:"industry" json:"industry"`
	Duration  string   `yaml:"duration" json:"duration"`
	Challenge string   `yaml:"challenge" json:"challenge"`
	Solution  string   `yaml:"solution" json:"solution"`
	Results   []Result `yaml:"results" json:"results"`
}

// Catalog is the parsed page data. It is read-only after Load.
type Catalog struct {
	Home        Home
	Plans       []Plan
	FAQs        []FAQ
	Packages    []Package
	AddOns      []AddOn
	HowItWorks  []Step
	CaseStudies []CaseStudy
	ROIStats    []Stat
}

type rawCatalog struct {
	Home     Home      `yaml:"home"`
	Plans    []rawPlan `yaml:"plans"`
	FAQs     []FAQ     `yaml:"faqs"`
	Services struct {
		Packages []Package  `yaml:"packages"`
		AddOns   []rawAddOn `yaml:"addons"`
	} `yaml:"services"`
	HowItWorks  []Step      `yaml:"how_it_works"`
	CaseStudies []CaseStudy `yaml:"case_studies"`
	ROIStats    []Stat      `yaml:"roi_stats"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		Home:        raw.Home,
		FAQs:        raw.FAQs,
		Packages:    raw.Services.Packages,
		HowItWorks:  raw.HowItWorks,
		CaseStudies: raw.CaseStudies,
		ROIStats:    raw.ROIStats,
	}
	for _, rp := range raw.Plans {
		p, err := rp.plan()
		if err != nil {
			return nil, err
		}
		c.Plans = append(c.Plans, p)
	}
	for _, ra := range raw.Services.AddOns {
		a, err := ra.addOn()
		if err != nil {
			return nil, err
		}
		c.AddOns = append(c.AddOns, a)
	}
	for _, pkg := range c.Packages {
		if _, ok := c.Plan(pkg.Plan); !ok {
			return nil, fmt.Errorf("package %q: unknown plan", pkg.Plan)
		}
	}
	if len(c.Plans) == 0 {
		return nil, errors.New("catalog has no plans")
	}
	return c, nil
}

// Plan looks a plan up by name, case-insensitively.
func (c *Catalog) Plan(name string) (Plan, bool) {
	for _, p := range c.Plans {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Plan{}, false
}

func (rp rawPlan) plan() (Plan, error) {
	p := Plan{
		Name:        rp.Name,
		Subtitle:    rp.Subtitle,
		Users:       rp.Users,
		Highlight:   rp.Highlight,
		CustomLabel: rp.CustomLabel,
		Features:    rp.Features,
	}
	if p.Custom() {
		return p, nil
	}
	var err error
	if p.Monthly, err = rp.Monthly.tier(); err != nil {
		return Plan{}, fmt.Errorf("plan %q monthly: %w", rp.Name, err)
	}
	if p.Annual, err = rp.Annual.tier(); err != nil {
		return Plan{}, fmt.Errorf("plan %q annual: %w", rp.Name, err)
	}
	return p, nil
}

func (rt rawTier) tier() (Tier, error) {
	setup, err := decimal.NewFromString(rt.Setup)
	if err != nil {
		return Tier{}, fmt.Errorf("setup: %w", err)
	}
	price, err := decimal.NewFromString(rt.Price)
	if err != nil {
		return Tier{}, fmt.Errorf("price: %w", err)
	}
	return Tier{Setup: setup, Price: price}, nil
}

func (ra rawAddOn) addOn() (AddOn, error) {
	a := AddOn{Name: ra.Name, Description: ra.Description, Period: ra.Period}
	var err error
	if a.Min, err = decimal.NewFromString(ra.Min); err != nil {
		return AddOn{}, fmt.Errorf("addon %q min: %w", ra.Name, err)
	}
	if ra.Max != "" {
		hi, err := decimal.NewFromString(ra.Max)
		if err != nil {
			return AddOn{}, fmt.Errorf("addon %q max: %w", ra.Name, err)
		}
		a.Max = decimal.NullDecimal{Decimal: hi, Valid: true}
	}
	return a, nil
}

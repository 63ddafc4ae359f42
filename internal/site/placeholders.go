package site

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/nexvstar/site/internal/content"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed placeholders.yaml
	placeholdersYAML []byte
	//go:embed fallback_post.md
	fallbackArticle string
)

const placeholderBody = "Full content here..."

type placeholderPost struct {
	ID       uint64   `yaml:"id"`
	Title    string   `yaml:"title"`
	Summary  string   `yaml:"summary"`
	Author   string   `yaml:"author"`
	Category string   `yaml:"category"`
	DaysAgo  int      `yaml:"days_ago"`
	Tags     []string `yaml:"tags"`
}

func (p placeholderPost) post(now time.Time, body string) content.BlogPost {
	return content.BlogPost{
		ID:       p.ID,
		Title:    p.Title,
		Summary:  p.Summary,
		Content:  body,
		Author:   p.Author,
		Category: p.Category,
		Tags:     p.Tags,
		Date:     now.AddDate(0, 0, -p.DaysAgo),
	}
}

// Placeholders are the records shown while the content store has nothing to
// serve. Post dates are relative to the time of the request.
type Placeholders struct {
	posts        []placeholderPost
	article      placeholderPost
	testimonials []content.Testimonial
}

type rawPlaceholders struct {
	Posts        []placeholderPost `yaml:"posts"`
	Article      placeholderPost   `yaml:"article"`
	Testimonials []struct {
		ID         uint64 `yaml:"id"`
		ClientName string `yaml:"client_name"`
		Role       string `yaml:"role"`
		Company    string `yaml:"company"`
		Quote      string `yaml:"quote"`
		Rating     int    `yaml:"rating"`
	} `yaml:"testimonials"`
}

func LoadPlaceholders() (*Placeholders, error) {
	var raw rawPlaceholders
	if err := yaml.Unmarshal(placeholdersYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse placeholders: %w", err)
	}
	ph := &Placeholders{posts: raw.Posts, article: raw.Article}
	for _, t := range raw.Testimonials {
		ph.testimonials = append(ph.testimonials, content.Testimonial{
			ID:         t.ID,
			ClientName: t.ClientName,
			Role:       t.Role,
			Company:    t.Company,
			Quote:      t.Quote,
			Rating:     t.Rating,
		})
	}
	return ph, nil
}

func (ph *Placeholders) BlogPosts(now time.Time) []content.BlogPost {
	out := make([]content.BlogPost, 0, len(ph.posts))
	for _, p := range ph.posts {
		out = append(out, p.post(now, placeholderBody))
	}
	return out
}

// BlogPost is the article rendered when a requested post does not exist.
func (ph *Placeholders) BlogPost(now time.Time) content.BlogPost {
	return ph.article.post(now, fallbackArticle)
}

func (ph *Placeholders) Testimonials() []content.Testimonial {
	out := make([]content.Testimonial, len(ph.testimonials))
	copy(out, ph.testimonials)
	return out
}

package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nexvstar/site/internal/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	cacheKeyPosts        = "content:blog_posts"
	cacheKeyTestimonials = "content:testimonials"
)

var ErrInvalidInput = errors.New("content: invalid input")

// Cache stores JSON snapshots of list results.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	repo     *Repo
	cache    Cache
	cacheTTL time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo *Repo, cache Cache, cacheTTL time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log, now: time.Now}
}

func (s *Service) ready() error {
	if s == nil || s.repo == nil || s.repo.db == nil {
		return common.ErrUnavailable
	}
	return nil
}

func (s *Service) GetBlogPosts(ctx context.Context) ([]BlogPost, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var posts []BlogPost
	if s.cached(ctx, cacheKeyPosts, &posts) {
		return posts, nil
	}
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cacheKeyPosts, posts)
	return posts, nil
}

// GetBlogPost returns (nil, false, nil) when no post has this id.
func (s *Service) GetBlogPost(ctx context.Context, id uint64) (*BlogPost, bool, error) {
	if err := s.ready(); err != nil {
		return nil, false, err
	}
	p, err := s.repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return p, true, nil
}

func (s *Service) GetTestimonials(ctx context.Context) ([]Testimonial, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var out []Testimonial
	if s.cached(ctx, cacheKeyTestimonials, &out) {
		return out, nil
	}
	out, err := s.repo.ListTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cacheKeyTestimonials, out)
	return out, nil
}

func (s *Service) buildPost(in PostInput) (BlogPost, error) {
	p := BlogPost{
		Title:    strings.TrimSpace(in.Title),
		Summary:  strings.TrimSpace(in.Summary),
		Content:  strings.TrimSpace(in.Content),
		Author:   strings.TrimSpace(in.Author),
		Category: strings.TrimSpace(in.Category),
		ImageURL: strings.TrimSpace(in.ImageURL),
		Tags:     cleanTags(in.Tags),
	}
	if p.Title == "" || p.Content == "" {
		return BlogPost{}, fmt.Errorf("%w: title and content required", ErrInvalidInput)
	}
	if p.Summary == "" {
		sum, err := Summarize(p.Content)
		if err != nil {
			return BlogPost{}, fmt.Errorf("content: summarize: %w", err)
		}
		p.Summary = sum
	}
	return p, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

func (s *Service) CreateBlogPost(ctx context.Context, in PostInput) (uint64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	p, err := s.buildPost(in)
	if err != nil {
		return 0, err
	}
	p.Date = s.now()
	if err := s.repo.InsertPost(ctx, &p); err != nil {
		return 0, err
	}
	s.invalidate(ctx, cacheKeyPosts)
	return p.ID, nil
}

func (s *Service) UpdateBlogPost(ctx context.Context, id uint64, in PostInput) error {
	if err := s.ready(); err != nil {
		return err
	}
	p, err := s.buildPost(in)
	if err != nil {
		return err
	}
	p.ID = id
	if err := s.repo.SavePost(ctx, &p); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyPosts)
	return nil
}

func (s *Service) DeleteBlogPost(ctx context.Context, id uint64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyPosts)
	return nil
}

func (s *Service) AddTestimonial(ctx context.Context, in TestimonialInput) (uint64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	t := Testimonial{
		ClientName: strings.TrimSpace(in.ClientName),
		Company:    strings.TrimSpace(in.Company),
		Role:       strings.TrimSpace(in.Role),
		Quote:      strings.TrimSpace(in.Quote),
		Rating:     in.Rating,
		AvatarURL:  strings.TrimSpace(in.AvatarURL),
	}
	if t.ClientName == "" || t.Quote == "" {
		return 0, fmt.Errorf("%w: client name and quote required", ErrInvalidInput)
	}
	if t.Rating < 1 || t.Rating > 5 {
		return 0, fmt.Errorf("%w: rating must be 1..5", ErrInvalidInput)
	}
	if err := s.repo.InsertTestimonial(ctx, &t); err != nil {
		return 0, err
	}
	s.invalidate(ctx, cacheKeyTestimonials)
	return t.ID, nil
}

// View decorates a post for the blog pages. The HTML body is only rendered
// for the article page.
func View(p BlogPost, withHTML bool) PostView {
	v := PostView{BlogPost: p, ReadingMinutes: ReadingMinutes(p.Content)}
	if withHTML {
		if html, err := RenderHTML(p.Content); err == nil {
			v.ContentHTML = html
		}
	}
	return v
}

func Views(posts []BlogPost) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, View(p, false))
	}
	return out
}

func (s *Service) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		s.log.Warn("content cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *Service) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, v, s.cacheTTL); err != nil {
		s.log.Warn("content cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warn("content cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

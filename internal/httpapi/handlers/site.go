package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/nexvstar/site/internal/common"
	"github.com/nexvstar/site/internal/content"
	"github.com/nexvstar/site/internal/site"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const homeListSize = 3

// posts returns the stored posts newest first, or the placeholder set when
// the store has none or cannot be reached.
func (h *Handler) posts(c *gin.Context) ([]content.BlogPost, bool) {
	posts, err := h.Content.GetBlogPosts(c.Request.Context())
	if err != nil {
		h.Log.Warn("blog posts unavailable, using placeholders", zap.Error(err))
	}
	if len(posts) == 0 {
		return h.Placeholders.BlogPosts(h.now()), true
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date.After(posts[j].Date) })
	return posts, false
}

func (h *Handler) testimonials(c *gin.Context) ([]content.Testimonial, bool) {
	ts, err := h.Content.GetTestimonials(c.Request.Context())
	if err != nil {
		h.Log.Warn("testimonials unavailable, using placeholders", zap.Error(err))
	}
	if len(ts) == 0 {
		return h.Placeholders.Testimonials(), true
	}
	return ts, false
}

func first[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (h *Handler) Home(c *gin.Context) {
	var (
		posts        []content.BlogPost
		ts           []content.Testimonial
		postsPH, tPH bool
	)
	// Both loaders swallow store errors, so the group only joins.
	var g errgroup.Group
	g.Go(func() error {
		posts, postsPH = h.posts(c)
		return nil
	})
	g.Go(func() error {
		ts, tPH = h.testimonials(c)
		return nil
	})
	_ = g.Wait()

	common.OK(c, gin.H{
		"home":         h.Catalog.Home,
		"plans":        h.Catalog.Teaser(),
		"latest_posts": content.Views(first(posts, homeListSize)),
		"testimonials": first(ts, homeListSize),
		"placeholder":  postsPH || tPH,
	})
}

func (h *Handler) Pricing(c *gin.Context) {
	b, err := site.ParseBilling(c.Query("billing"))
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10010, "billing must be monthly or annual")
		return
	}
	common.OK(c, h.Catalog.Pricing(b))
}

func (h *Handler) Services(c *gin.Context) {
	common.OK(c, h.Catalog.Services())
}

func (h *Handler) HowItWorks(c *gin.Context) {
	common.OK(c, gin.H{"steps": h.Catalog.HowItWorks})
}

func (h *Handler) CaseStudies(c *gin.Context) {
	ts, ph := h.testimonials(c)
	common.OK(c, gin.H{
		"case_studies": h.Catalog.CaseStudies,
		"roi_stats":    h.Catalog.ROIStats,
		"testimonials": ts,
		"placeholder":  ph,
	})
}

func (h *Handler) Testimonials(c *gin.Context) {
	ts, ph := h.testimonials(c)
	common.OK(c, gin.H{"testimonials": ts, "placeholder": ph})
}

func (h *Handler) AddTestimonial(c *gin.Context) {
	var req content.TestimonialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	id, err := h.Content.AddTestimonial(c.Request.Context(), req)
	if err != nil {
		if isInvalid(err) {
			common.Fail(c, http.StatusBadRequest, 10002, err.Error())
			return
		}
		h.dependencyFail(c, "add testimonial", err, "Failed to save testimonial. Please try again.")
		return
	}
	common.OK(c, gin.H{"id": id})
}

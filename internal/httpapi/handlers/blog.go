package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexvstar/site/internal/common"
	"github.com/nexvstar/site/internal/content"
	"github.com/nexvstar/site/internal/leads"
	"github.com/nexvstar/site/internal/newsletter"
	"github.com/nexvstar/site/internal/users"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func isInvalid(err error) bool {
	return errors.Is(err, content.ErrInvalidInput) ||
		errors.Is(err, leads.ErrInvalidInput) ||
		errors.Is(err, leads.ErrInvalidStatus) ||
		errors.Is(err, newsletter.ErrInvalidEmail) ||
		errors.Is(err, users.ErrInvalidInput) ||
		errors.Is(err, users.ErrInvalidRole)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, users.ErrNotFound) ||
		errors.Is(err, newsletter.ErrNotFound)
}

// ListBlogPosts serves GET /api/blog?category=&q=. Filtering applies to the
// placeholder set too, so the tabs behave the same on an empty store.
func (h *Handler) ListBlogPosts(c *gin.Context) {
	posts, ph := h.posts(c)
	posts = content.FilterPosts(posts, c.Query("category"), c.Query("q"))
	common.OK(c, gin.H{
		"posts":       content.Views(posts),
		"total":       len(posts),
		"placeholder": ph,
	})
}

func (h *Handler) BlogCategories(c *gin.Context) {
	common.OK(c, gin.H{"categories": content.Categories})
}

func (h *Handler) GetBlogPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, found, err := h.Content.GetBlogPost(c.Request.Context(), id)
	if err != nil {
		h.Log.Warn("blog post unavailable, using placeholder", zap.Uint64("id", id), zap.Error(err))
	}
	if !found || p == nil {
		ph := h.Placeholders.BlogPost(h.now())
		common.OK(c, gin.H{"post": content.View(ph, true), "placeholder": true})
		return
	}
	common.OK(c, gin.H{"post": content.View(*p, true), "placeholder": false})
}

func (h *Handler) CreateBlogPost(c *gin.Context) {
	var req content.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	id, err := h.Content.CreateBlogPost(c.Request.Context(), req)
	if err != nil {
		if isInvalid(err) {
			common.Fail(c, http.StatusBadRequest, 10002, err.Error())
			return
		}
		h.dependencyFail(c, "create blog post", err, "Failed to save post. Please try again.")
		return
	}
	common.OK(c, gin.H{"id": id})
}

func (h *Handler) UpdateBlogPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req content.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if err := h.Content.UpdateBlogPost(c.Request.Context(), id, req); err != nil {
		switch {
		case isInvalid(err):
			common.Fail(c, http.StatusBadRequest, 10002, err.Error())
		case isNotFound(err):
			common.Fail(c, http.StatusNotFound, 40403, "post not found")
		default:
			h.dependencyFail(c, "update blog post", err, "Failed to save post. Please try again.")
		}
		return
	}
	common.OK(c, gin.H{"id": id})
}

func (h *Handler) DeleteBlogPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Content.DeleteBlogPost(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			common.Fail(c, http.StatusNotFound, 40403, "post not found")
			return
		}
		h.dependencyFail(c, "delete blog post", err, "Failed to delete post. Please try again.")
		return
	}
	common.OK(c, gin.H{"id": id, "deleted": true})
}

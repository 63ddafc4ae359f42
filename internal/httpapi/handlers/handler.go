package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nexvstar/site/internal/chatbot"
	"github.com/nexvstar/site/internal/common"
	"github.com/nexvstar/site/internal/config"
	"github.com/nexvstar/site/internal/content"
	"github.com/nexvstar/site/internal/httpapi/middleware"
	"github.com/nexvstar/site/internal/leads"
	"github.com/nexvstar/site/internal/models"
	"github.com/nexvstar/site/internal/newsletter"
	"github.com/nexvstar/site/internal/site"
	"go.uber.org/zap"
)

// LeadIntake stores contact-form leads and demo bookings.
type LeadIntake interface {
	AddLead(ctx context.Context, in leads.LeadInput) (uint64, error)
	SubmitDemoRequest(ctx context.Context, in leads.DemoInput) (uint64, error)
	GetLeads(ctx context.Context) ([]leads.Lead, error)
	GetDemoRequests(ctx context.Context) ([]leads.DemoRequest, error)
	UpdateDemoRequestStatus(ctx context.Context, id uint64, status leads.DemoStatus) error
}

type NewsletterStore interface {
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
	GetSubscribers(ctx context.Context) ([]newsletter.Subscriber, error)
}

type ContentStore interface {
	GetBlogPosts(ctx context.Context) ([]content.BlogPost, error)
	GetBlogPost(ctx context.Context, id uint64) (*content.BlogPost, bool, error)
	GetTestimonials(ctx context.Context) ([]content.Testimonial, error)
	CreateBlogPost(ctx context.Context, in content.PostInput) (uint64, error)
	UpdateBlogPost(ctx context.Context, id uint64, in content.PostInput) error
	DeleteBlogPost(ctx context.Context, id uint64) error
	AddTestimonial(ctx context.Context, in content.TestimonialInput) (uint64, error)
}

type UserStore interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint64) (*models.User, error)
	SaveProfile(ctx context.Context, id uint64, p models.Profile) (*models.User, error)
	AssignRole(ctx context.Context, id uint64, role models.Role) error
}

type Deps struct {
	Leads        LeadIntake
	Newsletter   NewsletterStore
	Content      ContentStore
	Users        UserStore
	Catalog      *site.Catalog
	Placeholders *site.Placeholders
	Chat         *chatbot.Registry
}

type Handler struct {
	Cfg          config.Config
	Log          *zap.Logger
	Leads        LeadIntake
	Newsletter   NewsletterStore
	Content      ContentStore
	Users        UserStore
	Catalog      *site.Catalog
	Placeholders *site.Placeholders
	Chat         *chatbot.Registry

	now      func() time.Time
	upgrader websocket.Upgrader
}

func NewHandler(cfg config.Config, d Deps, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{
		Cfg:          cfg,
		Log:          log,
		Leads:        d.Leads,
		Newsletter:   d.Newsletter,
		Content:      d.Content,
		Users:        d.Users,
		Catalog:      d.Catalog,
		Placeholders: d.Placeholders,
		Chat:         d.Chat,
		now:          time.Now,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.allowedOrigin,
	}
	return h
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true, "time": h.now().UTC()})
}

func userIDFromContext(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		common.Fail(c, http.StatusBadRequest, 10004, "invalid "+name)
		return 0, false
	}
	return id, true
}

// dependencyFail logs a store failure and writes the user-facing notice.
// A store built without a database answers 503, any other failure 500.
func (h *Handler) dependencyFail(c *gin.Context, op string, err error, notice string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Error(err),
	}
	if errors.Is(err, common.ErrUnavailable) {
		h.Log.Warn("store unavailable", fields...)
		common.Fail(c, http.StatusServiceUnavailable, 20001, notice)
		return
	}
	h.Log.Error("store call failed", fields...)
	common.Fail(c, http.StatusInternalServerError, 50001, notice)
}

// allowedOrigin reports whether a websocket upgrade from the request origin
// is permitted. An empty allow list accepts same-host requests only.
func (h *Handler) allowedOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range h.Cfg.CORSAllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

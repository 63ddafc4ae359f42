package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexvstar/site/internal/auth"
	"github.com/nexvstar/site/internal/common"
	"github.com/nexvstar/site/internal/models"
)

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "email and password required")
		return
	}
	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if isNotFound(err) {
			common.Fail(c, http.StatusUnauthorized, 40103, "invalid email or password")
			return
		}
		h.dependencyFail(c, "login", err, "Failed to sign in. Please try again.")
		return
	}
	token, err := auth.SignJWT(u.ID, string(u.Role), h.Cfg.JWTSecret, h.Cfg.JWTTTL)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20003, "failed to sign token")
		return
	}
	common.OK(c, gin.H{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
		"token": token,
	})
}

// caller loads the authenticated user. The token may outlive the account.
func (h *Handler) caller(c *gin.Context) (*models.User, bool) {
	uid, ok := userIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return nil, false
	}
	u, err := h.Users.GetByID(c.Request.Context(), uid)
	if err != nil {
		if isNotFound(err) {
			common.Fail(c, http.StatusUnauthorized, 40104, "account no longer exists")
			return nil, false
		}
		h.dependencyFail(c, "load caller", err, "Failed to load profile. Please try again.")
		return nil, false
	}
	return u, true
}

func (h *Handler) Me(c *gin.Context) {
	u, ok := h.caller(c)
	if !ok {
		return
	}
	common.OK(c, gin.H{
		"id":         u.ID,
		"role":       u.Role,
		"profile":    u.Profile(),
		"created_at": u.CreatedAt,
	})
}

func (h *Handler) SaveMyProfile(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}
	var req models.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	u, err := h.Users.SaveProfile(c.Request.Context(), uid, req)
	if err != nil {
		switch {
		case isInvalid(err):
			common.Fail(c, http.StatusBadRequest, 10002, "email required")
		case isNotFound(err):
			common.Fail(c, http.StatusUnauthorized, 40104, "account no longer exists")
		default:
			h.dependencyFail(c, "save profile", err, "Failed to save profile. Please try again.")
		}
		return
	}
	common.OK(c, gin.H{"profile": u.Profile()})
}

func (h *Handler) MyRole(c *gin.Context) {
	u, ok := h.caller(c)
	if !ok {
		return
	}
	common.OK(c, gin.H{"role": u.Role})
}

// AmIAdmin reads the stored role, so a demoted admin is told false even
// while their token still carries the old claim.
func (h *Handler) AmIAdmin(c *gin.Context) {
	u, ok := h.caller(c)
	if !ok {
		return
	}
	common.OK(c, gin.H{"admin": u.Role == models.RoleAdmin})
}

func (h *Handler) GetUserProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	u, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			common.Fail(c, http.StatusNotFound, 40401, "user not found")
			return
		}
		h.dependencyFail(c, "get user profile", err, "Failed to load profile. Please try again.")
		return
	}
	common.OK(c, gin.H{"id": u.ID, "role": u.Role, "profile": u.Profile()})
}

type roleReq struct {
	Role models.Role `json:"role" binding:"required"`
}

func (h *Handler) AssignRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if err := h.Users.AssignRole(c.Request.Context(), id, req.Role); err != nil {
		switch {
		case isInvalid(err):
			common.Fail(c, http.StatusBadRequest, 10007, "role must be admin, user or guest")
		case isNotFound(err):
			common.Fail(c, http.StatusNotFound, 40401, "user not found")
		default:
			h.dependencyFail(c, "assign role", err, "Failed to assign role. Please try again.")
		}
		return
	}
	common.OK(c, gin.H{"id": id, "role": req.Role})
}

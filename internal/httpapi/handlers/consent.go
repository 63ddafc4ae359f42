package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexvstar/site/internal/common"
)

const (
	ConsentCookie = "nexvstar_cookie_consent"
	consentMaxAge = int(365 * 24 * time.Hour / time.Second)
)

var consentChoices = map[string]bool{
	"accepted":       true,
	"essential-only": true,
	"dismissed":      true,
}

func (h *Handler) GetConsent(c *gin.Context) {
	choice, err := c.Cookie(ConsentCookie)
	if err != nil || !consentChoices[choice] {
		common.OK(c, gin.H{"choice": nil, "show_banner": true})
		return
	}
	common.OK(c, gin.H{"choice": choice, "show_banner": false})
}

type consentReq struct {
	Choice string `json:"choice" binding:"required"`
}

func (h *Handler) SetConsent(c *gin.Context) {
	var req consentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if !consentChoices[req.Choice] {
		common.Fail(c, http.StatusBadRequest, 10005, "choice must be accepted, essential-only or dismissed")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ConsentCookie, req.Choice, consentMaxAge, "/", "", c.Request.TLS != nil, false)
	common.OK(c, gin.H{"choice": req.Choice})
}

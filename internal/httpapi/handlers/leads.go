package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexvstar/site/internal/common"
	"github.com/nexvstar/site/internal/leads"
)

const (
	noticeLeadOK    = "Message sent! Our team will respond within 24 hours."
	noticeLeadFail  = "Failed to send message. Please try again."
	noticeDemoOK    = "Demo request submitted! We'll contact you within 2 hours."
	noticeDemoFail  = "Failed to submit request. Please try again."
	noticeSubOK     = "Subscribed successfully! Welcome to NexVstar insights."
	noticeSubFail   = "Failed to subscribe. Please try again."
	noticeUnsubOK   = "You have been unsubscribed."
	noticeUnsubFail = "Failed to unsubscribe. Please try again."
)

func (h *Handler) SubmitLead(c *gin.Context) {
	var req leads.LeadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	id, err := h.Leads.AddLead(c.Request.Context(), req)
	if err != nil {
		if isInvalid(err) {
			common.Fail(c, http.StatusBadRequest, 10002, "name, a valid email and a message are required")
			return
		}
		h.dependencyFail(c, "add lead", err, noticeLeadFail)
		return
	}
	common.OKMsg(c, noticeLeadOK, gin.H{"id": id})
}

type demoReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	// Unix milliseconds, as sent by the booking form.
	PreferredDate int64  `json:"preferred_date"`
	Message       string `json:"message"`
}

func (h *Handler) SubmitDemoRequest(c *gin.Context) {
	var req demoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	in := leads.DemoInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if req.PreferredDate > 0 {
		in.PreferredDate = time.UnixMilli(req.PreferredDate).UTC()
	}
	id, err := h.Leads.SubmitDemoRequest(c.Request.Context(), in)
	if err != nil {
		if isInvalid(err) {
			common.Fail(c, http.StatusBadRequest, 10002, "name, a valid email, company and phone are required")
			return
		}
		h.dependencyFail(c, "submit demo request", err, noticeDemoFail)
		return
	}
	common.OKMsg(c, noticeDemoOK, gin.H{"id": id})
}

func (h *Handler) ListLeads(c *gin.Context) {
	out, err := h.Leads.GetLeads(c.Request.Context())
	if err != nil {
		h.dependencyFail(c, "list leads", err, "Failed to load leads. Please try again.")
		return
	}
	common.OK(c, gin.H{"leads": out, "total": len(out)})
}

func (h *Handler) ListDemoRequests(c *gin.Context) {
	out, err := h.Leads.GetDemoRequests(c.Request.Context())
	if err != nil {
		h.dependencyFail(c, "list demo requests", err, "Failed to load demo requests. Please try again.")
		return
	}
	common.OK(c, gin.H{"demo_requests": out, "total": len(out)})
}

type demoStatusReq struct {
	Status leads.DemoStatus `json:"status" binding:"required"`
}

func (h *Handler) UpdateDemoRequestStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req demoStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if err := h.Leads.UpdateDemoRequestStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case isInvalid(err):
			common.Fail(c, http.StatusBadRequest, 10003, "status must be pending, scheduled or completed")
		case isNotFound(err):
			common.Fail(c, http.StatusNotFound, 40404, "demo request not found")
		default:
			h.dependencyFail(c, "update demo status", err, "Failed to update status. Please try again.")
		}
		return
	}
	common.OK(c, gin.H{"id": id, "status": req.Status})
}

type emailReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req emailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "email required")
		return
	}
	if err := h.Newsletter.Subscribe(c.Request.Context(), req.Email); err != nil {
		if isInvalid(err) {
			common.Fail(c, http.StatusBadRequest, 10002, "invalid email")
			return
		}
		h.dependencyFail(c, "subscribe", err, noticeSubFail)
		return
	}
	common.OKMsg(c, noticeSubOK, nil)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	var req emailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "email required")
		return
	}
	if err := h.Newsletter.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		switch {
		case isInvalid(err):
			common.Fail(c, http.StatusBadRequest, 10002, "invalid email")
		case isNotFound(err):
			common.Fail(c, http.StatusNotFound, 40405, "subscriber not found")
		default:
			h.dependencyFail(c, "unsubscribe", err, noticeUnsubFail)
		}
		return
	}
	common.OKMsg(c, noticeUnsubOK, nil)
}

func (h *Handler) ListSubscribers(c *gin.Context) {
	out, err := h.Newsletter.GetSubscribers(c.Request.Context())
	if err != nil {
		h.dependencyFail(c, "list subscribers", err, "Failed to load subscribers. Please try again.")
		return
	}
	common.OK(c, gin.H{"subscribers": out, "total": len(out)})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"erp/internal/placement"
)

func (h *Handler) placementDashboard(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"dashboard": h.svc.Placements.Dashboard(c.Request.Context())})
}

func (h *Handler) createPosting(c *gin.Context) {
	var in placement.PostingInput
	if err := bind(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.svc.Placements.CreatePosting(c.Request.Context(), actor(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "posting submitted for approval", "posting": p})
}

func (h *Handler) getPosting(c *gin.Context) {
	p, err := h.svc.Placements.GetPosting(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"posting": p})
}

func (h *Handler) updatePosting(c *gin.Context) {
	var in placement.PostingInput
	if err := bind(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.svc.Placements.UpdatePosting(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"posting": p})
}

func (h *Handler) decidePosting(c *gin.Context) {
	var d placement.Decision
	if err := bind(c, &d); err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.svc.Placements.Decide(c.Request.Context(), actor(c), c.Param("id"), d)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "posting " + string(p.Status), "posting": p})
}

func (h *Handler) pendingPostings(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"postings": h.svc.Placements.Pending(c.Request.Context())})
}

func (h *Handler) placementBoard(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"board": h.svc.Placements.Board(c.Request.Context(), actor(c))})
}

func (h *Handler) postingApplications(c *gin.Context) {
	apps, err := h.svc.Placements.ApplicationsForPosting(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"applications": apps})
}

func (h *Handler) apply(c *gin.Context) {
	var in placement.ApplyInput
	if c.Request.ContentLength != 0 {
		if err := bind(c, &in); err != nil {
			h.fail(c, err)
			return
		}
	}
	a, err := h.svc.Placements.Apply(c.Request.Context(), actor(c), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "application submitted", "application": a})
}

func (h *Handler) updateApplication(c *gin.Context) {
	var upd placement.ApplicationUpdate
	if err := bind(c, &upd); err != nil {
		h.fail(c, err)
		return
	}
	a, err := h.svc.Placements.UpdateApplication(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"application": a})
}

func (h *Handler) myApplications(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"applications": h.svc.Placements.MyApplications(c.Request.Context(), actor(c))})
}

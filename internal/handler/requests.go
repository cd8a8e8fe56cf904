package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"erp/internal/request"
)

func (h *Handler) requestTypes(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"types": h.svc.Requests.Catalog()})
}

func (h *Handler) requestForm(c *gin.Context) {
	form, err := h.svc.Requests.Form(actor(c), c.Param("type"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"form": form})
}

func (h *Handler) myRequests(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"requests": h.svc.Requests.Mine(c.Request.Context(), actor(c))})
}

func (h *Handler) submitRequest(c *gin.Context) {
	var sub request.Submission
	if err := bind(c, &sub); err != nil {
		h.fail(c, err)
		return
	}
	req, err := h.svc.Requests.Submit(c.Request.Context(), actor(c), sub)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "application submitted", "request": req})
}

func (h *Handler) requestQueue(c *gin.Context) {
	reqs, err := h.svc.Requests.Queue(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"requests": reqs})
}

func (h *Handler) getRequest(c *gin.Context) {
	req, err := h.svc.Requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"request": req})
}

func (h *Handler) reviewRequest(c *gin.Context) {
	var rv request.Review
	if err := bind(c, &rv); err != nil {
		h.fail(c, err)
		return
	}
	req, err := h.svc.Requests.Review(c.Request.Context(), actor(c), c.Param("id"), rv)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"request": req})
}

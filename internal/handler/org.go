package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"erp/internal/orgstructure"
	"erp/internal/validation"
)

type activeUpdate struct {
	IsActive *bool `json:"is_active"`
}

func (h *Handler) structure(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"structure": h.svc.Org.Structure(c.Request.Context())})
}

func (h *Handler) setActive(unit orgstructure.Unit) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd activeUpdate
		if err := bind(c, &upd); err != nil {
			h.fail(c, err)
			return
		}
		if upd.IsActive == nil {
			h.fail(c, validation.Field("is_active", "is_active is required"))
			return
		}
		if err := h.svc.Org.SetActive(c.Request.Context(), unit, c.Param("id"), *upd.IsActive); err != nil {
			h.fail(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"id": c.Param("id"), "is_active": *upd.IsActive})
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"erp/internal/attendance"
)

type markRequest struct {
	Entries []attendance.MarkEntry `json:"entries"`
}

func (h *Handler) markAttendance(c *gin.Context) {
	var req markRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	records, err := h.svc.Attendance.Mark(c.Request.Context(), actor(c), req.Entries)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "attendance recorded", "records": records})
}

func (h *Handler) adminAttendance(c *gin.Context) {
	report := h.svc.Attendance.AdminDashboard(c.Request.Context(), c.Query("search"))
	respond(c, http.StatusOK, gin.H{"report": report})
}

func (h *Handler) deanAttendance(c *gin.Context) {
	report, err := h.svc.Attendance.DeanDashboard(c.Request.Context(), actor(c), c.Query("school"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"report": report})
}

func (h *Handler) hodAttendance(c *gin.Context) {
	report, err := h.svc.Attendance.HODDashboard(c.Request.Context(), actor(c), c.Query("department"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"report": report})
}

// Package handler exposes the services over a gin JSON API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"erp/internal/attendance"
	"erp/internal/auth"
	"erp/internal/logger"
	"erp/internal/orgstructure"
	"erp/internal/placement"
	"erp/internal/profile"
	"erp/internal/request"
)

const actorKey = "actor"

// Services bundles the domain services served by the API.
type Services struct {
	Profiles   *profile.Service
	Attendance *attendance.Service
	Placements *placement.Service
	Requests   *request.Service
	Org        *orgstructure.Service
}

// Handler serves the v1 API.
type Handler struct {
	svc    Services
	signer *auth.Signer
	log    logger.Logger
	debug  bool
}

// New creates a handler. In debug mode internal error messages are returned to clients.
func New(svc Services, signer *auth.Signer, log logger.Logger, debug bool) *Handler {
	return &Handler{svc: svc, signer: signer, log: log, debug: debug}
}

// Register mounts the v1 routes on r.
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/v1")
	v1.POST("/auth/token", h.issueToken)
	v1.GET("/university-structure", h.structure)

	authed := v1.Group("", auth.Identity(h.signer), h.resolveActor)
	authed.GET("/me", h.me)
	authed.POST("/profiles", h.createProfile)
	authed.GET("/profiles/:id", h.getProfile)
	authed.GET("/search", h.search)

	authed.POST("/attendance", h.markAttendance)
	authed.GET("/attendance/admin", h.adminAttendance)
	authed.GET("/attendance/dean", h.deanAttendance)
	authed.GET("/attendance/hod", h.hodAttendance)

	authed.GET("/placements", h.placementDashboard)
	authed.POST("/placements", h.createPosting)
	authed.GET("/placements/pending", h.pendingPostings)
	authed.GET("/placements/approved", h.placementBoard)
	authed.GET("/placements/:id", h.getPosting)
	authed.PUT("/placements/:id", h.updatePosting)
	authed.POST("/placements/:id/decision", h.decidePosting)
	authed.GET("/placements/:id/applications", h.postingApplications)
	authed.POST("/placements/:id/applications", h.apply)
	authed.PATCH("/placement-applications/:id", h.updateApplication)
	authed.GET("/me/placement-applications", h.myApplications)

	authed.GET("/requests/types", h.requestTypes)
	authed.GET("/requests/types/:type", h.requestForm)
	authed.GET("/requests", h.myRequests)
	authed.POST("/requests", h.submitRequest)
	authed.GET("/requests/queue", h.requestQueue)
	authed.GET("/requests/:id", h.getRequest)
	authed.POST("/requests/:id/review", h.reviewRequest)

	authed.PATCH("/schools/:id", h.setActive(orgstructure.UnitSchool))
	authed.PATCH("/departments/:id", h.setActive(orgstructure.UnitDepartment))
	authed.PATCH("/programs/:id", h.setActive(orgstructure.UnitProgram))
}

// resolveActor loads the caller's profile named by the token subject.
func (h *Handler) resolveActor(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing identity"})
		return
	}
	p, err := h.svc.Profiles.Get(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unknown profile"})
			return
		}
		h.fail(c, err)
		return
	}
	c.Set(actorKey, p)
	c.Next()
}

func actor(c *gin.Context) profile.Profile {
	p, _ := c.MustGet(actorKey).(profile.Profile)
	return p
}

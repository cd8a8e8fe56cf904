package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"erp/internal/auth"
	"erp/internal/profile"
	"erp/internal/validation"
)

type tokenRequest struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refresh_token"`
}

// issueToken exchanges a username or a refresh token for a token pair.
// Passwords are out of scope: the username only names the caller.
func (h *Handler) issueToken(c *gin.Context) {
	var req tokenRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	var (
		p   profile.Profile
		err error
	)
	switch {
	case req.RefreshToken != "":
		claims, perr := h.signer.Parse(req.RefreshToken, auth.KindRefresh)
		if perr != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid refresh token"})
			return
		}
		p, err = h.svc.Profiles.Get(ctx, claims.Subject)
	case strings.TrimSpace(req.Username) != "":
		p, err = h.svc.Profiles.GetByUsername(ctx, req.Username)
	default:
		h.fail(c, validation.Field("username", "username or refresh_token is required"))
		return
	}
	if errors.Is(err, profile.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unknown profile"})
		return
	} else if err != nil {
		h.fail(c, err)
		return
	}

	tokens, err := h.signer.Issue(p.ID, string(p.Role))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"tokens": tokens, "profile": p})
}

func (h *Handler) me(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"profile": actor(c)})
}

func (h *Handler) createProfile(c *gin.Context) {
	var in profile.NewProfile
	if err := bind(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.svc.Profiles.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"profile": p})
}

func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.svc.Profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) search(c *gin.Context) {
	q := c.Query("q")
	res := h.svc.Profiles.Search(c.Request.Context(), q)
	respond(c, http.StatusOK, gin.H{"query": q, "results": res})
}

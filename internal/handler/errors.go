package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"erp/internal/orgstructure"
	"erp/internal/placement"
	"erp/internal/profile"
	"erp/internal/request"
	"erp/internal/validation"
)

var errMalformedBody = errors.New("malformed JSON body")

var notFound = []error{
	profile.ErrNotFound,
	placement.ErrPostingNotFound,
	placement.ErrApplicationNotFound,
	request.ErrNotFound,
	orgstructure.ErrNotFound,
}

var conflicts = []error{
	placement.ErrDuplicateApplication,
	placement.ErrAlreadyDecided,
}

// respond writes a success envelope merged with payload.
func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// fail maps err to a status code and writes the failure envelope.
// Unexpected errors are logged and hidden unless the app runs in debug mode.
func (h *Handler) fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	body := gin.H{"success": false}

	if verr, ok := validation.As(err); ok {
		code = http.StatusBadRequest
		body["message"] = verr.Error()
		if fields := verr.FieldMap(); fields != nil {
			body["errors"] = fields
		}
		c.AbortWithStatusJSON(code, body)
		return
	}
	if errors.Is(err, errMalformedBody) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": target.Error()})
			return
		}
	}
	for _, target := range conflicts {
		if errors.Is(err, target) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"success": false, "message": target.Error()})
			return
		}
	}

	h.log.Error("request failed", c.Request.Method, c.FullPath(), err)
	body["message"] = http.StatusText(code)
	if h.debug {
		body["message"] = err.Error()
	}
	c.AbortWithStatusJSON(code, body)
}

// bind decodes the JSON body into v. Field rules are checked by the services.
func bind(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return errors.Wrap(errMalformedBody, err.Error())
	}
	return nil
}

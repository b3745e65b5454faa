package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
)

// Every endpoint responds with the same envelope: {"success": bool} plus
// data/message on success, error/errors on failure.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func RespondError(c *gin.Context, err error) {
	ae := apierr.From(err)

	body := gin.H{"success": false, "code": ae.Code}
	if len(ae.Fields) > 0 {
		body["error"] = "Validation failed"
		body["errors"] = ae.Fields
	} else if ae.Status == http.StatusInternalServerError && gin.Mode() == gin.ReleaseMode {
		// Internal detail stays in the logs in production.
		body["error"] = "Internal server error"
	} else {
		body["error"] = ae.Error()
	}
	c.JSON(ae.Status, body)
}

func RespondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "bad_request", "error": msg})
}

// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"carpool/internal/modules/commuter"
	"carpool/internal/modules/route"
)

type errorResponse struct {
	Error string `json:"error"`
}

// idPattern matches the uuid and cuid style ids the commuter table uses.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("recordid", func(fl validator.FieldLevel) bool {
			return idPattern.MatchString(fl.Field().String())
		})
	}
}

type idURI struct {
	ID string `uri:"id" binding:"required,max=64,recordid"`
}

type pairURI struct {
	ID    string `uri:"id" binding:"required,max=64,recordid"`
	Other string `uri:"other" binding:"required,max=64,recordid"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, commuter.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, commuter.ErrInvalid):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, route.ErrNoDriver), errors.Is(err, route.ErrViewerRoute):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

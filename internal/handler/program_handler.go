package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
)

// ListPrograms returns all programs in display order.
func (a *API) ListPrograms(c *gin.Context) {
	items, err := a.programs.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list programs")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetProgram returns one program.
func (a *API) GetProgram(c *gin.Context) {
	item, err := a.programs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load program")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateProgram creates a program from a JSON body.
func (a *API) CreateProgram(c *gin.Context) {
	var input service.ProgramInput
	if err := bindStrictJSON(c, &input); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	item, err := a.programs.Create(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create program")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateProgram merges a JSON patch into a program.
func (a *API) UpdateProgram(c *gin.Context) {
	var patch service.ProgramPatch
	if err := bindStrictJSON(c, &patch); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	item, err := a.programs.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		a.respondServiceError(c, err, "failed to update program")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteProgram removes a program.
func (a *API) DeleteProgram(c *gin.Context) {
	if err := a.programs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondServiceError(c, err, "failed to delete program")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "program deleted"})
}

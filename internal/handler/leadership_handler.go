package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
)

var leadershipFormFields = []string{
	"name", "role_en", "role_fr", "bio_en", "bio_fr", "email", "linkedin", "image_url", "order",
}

func (a *API) ListLeadership(c *gin.Context) {
	items, err := a.leadership.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list leadership")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *API) GetLeadershipMember(c *gin.Context) {
	item, err := a.leadership.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load leadership member")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) CreateLeadershipMember(c *gin.Context) {
	var input service.LeadershipInput
	if err := bindStrictJSON(c, &input); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	item, err := a.leadership.Create(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create leadership member")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// CreateLeadershipMemberWithImage 创建成员并保存头像，图片可选。
func (a *API) CreateLeadershipMemberWithImage(c *gin.Context) {
	fields, upload, err := a.parseMultipart(c, leadershipFormFields...)
	if err != nil {
		a.respondServiceError(c, err, "failed to read upload")
		return
	}
	input := service.LeadershipInput{
		Name:     fields.text("name"),
		RoleEN:   fields.text("role_en"),
		RoleFR:   fields.text("role_fr"),
		BioEN:    fields.text("bio_en"),
		BioFR:    fields.text("bio_fr"),
		Email:    fields.text("email"),
		LinkedIn: fields.text("linkedin"),
		ImageURL: fields.text("image_url"),
	}
	if order := fields.integer("order"); order != nil {
		input.Order = *order
	}
	if err := fields.err(); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}

	item, err := a.leadership.CreateWithImage(c.Request.Context(), input, upload)
	if err != nil {
		a.respondServiceError(c, err, "failed to create leadership member")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) UpdateLeadershipMember(c *gin.Context) {
	var patch service.LeadershipPatch
	if err := bindStrictJSON(c, &patch); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	item, err := a.leadership.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		a.respondServiceError(c, err, "failed to update leadership member")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) UpdateLeadershipMemberWithImage(c *gin.Context) {
	fields, upload, err := a.parseMultipart(c, leadershipFormFields...)
	if err != nil {
		a.respondServiceError(c, err, "failed to read upload")
		return
	}
	patch := service.LeadershipPatch{
		Name:     fields.str("name"),
		RoleEN:   fields.str("role_en"),
		RoleFR:   fields.str("role_fr"),
		BioEN:    fields.str("bio_en"),
		BioFR:    fields.str("bio_fr"),
		Email:    fields.str("email"),
		LinkedIn: fields.str("linkedin"),
		ImageURL: fields.str("image_url"),
		Order:    fields.integer("order"),
	}
	if err := fields.err(); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}

	item, err := a.leadership.UpdateWithImage(c.Request.Context(), c.Param("id"), patch, upload)
	if err != nil {
		a.respondServiceError(c, err, "failed to update leadership member")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) DeleteLeadershipMember(c *gin.Context) {
	if err := a.leadership.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondServiceError(c, err, "failed to delete leadership member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "leadership member deleted"})
}

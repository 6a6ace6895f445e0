package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
)

// SubmitJoin 保存加入申请，访客可匿名提交。
func (a *API) SubmitJoin(c *gin.Context) {
	var input service.JoinInput
	if err := bindStrictJSON(c, &input); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	record, err := a.forms.SubmitJoin(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to save join request")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// SubmitDonate 保存捐款意向。
func (a *API) SubmitDonate(c *gin.Context) {
	var input service.DonateInput
	if err := bindStrictJSON(c, &input); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	record, err := a.forms.SubmitDonate(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to save donation pledge")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// SubmitContact 保存联系留言。
func (a *API) SubmitContact(c *gin.Context) {
	var input service.ContactInput
	if err := bindStrictJSON(c, &input); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	record, err := a.forms.SubmitContact(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to save contact message")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListSubmissions 返回某类表单的全部提交，仅管理员可见。
func (a *API) ListSubmissions(c *gin.Context) {
	items, err := a.forms.List(c.Request.Context(), c.Param("variant"))
	if err != nil {
		a.respondServiceError(c, err, "failed to list submissions")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *API) GetSubmission(c *gin.Context) {
	item, err := a.forms.Get(c.Request.Context(), c.Param("variant"), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load submission")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) DeleteSubmission(c *gin.Context) {
	if err := a.forms.Delete(c.Request.Context(), c.Param("variant"), c.Param("id")); err != nil {
		a.respondServiceError(c, err, "failed to delete submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "submission deleted"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
)

var eventFormFields = []string{
	"date_en", "date_fr", "title_en", "title_fr", "location_en", "location_fr",
	"summary_en", "summary_fr", "media_key", "image_url", "order",
}

func eventPatchFromForm(fields *multipartFields) service.EventPatch {
	return service.EventPatch{
		DateEN:     fields.str("date_en"),
		DateFR:     fields.str("date_fr"),
		TitleEN:    fields.str("title_en"),
		TitleFR:    fields.str("title_fr"),
		LocationEN: fields.str("location_en"),
		LocationFR: fields.str("location_fr"),
		SummaryEN:  fields.str("summary_en"),
		SummaryFR:  fields.str("summary_fr"),
		MediaKey:   fields.str("media_key"),
		ImageURL:   fields.str("image_url"),
		Order:      fields.integer("order"),
	}
}

// ListEvents returns all events in display order.
func (a *API) ListEvents(c *gin.Context) {
	items, err := a.events.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list events")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetEvent returns one event.
func (a *API) GetEvent(c *gin.Context) {
	item, err := a.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load event")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateEvent creates an event from a JSON body.
func (a *API) CreateEvent(c *gin.Context) {
	var input service.EventInput
	if err := bindStrictJSON(c, &input); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	item, err := a.events.Create(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create event")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// CreateEventWithImage creates an event from multipart fields plus an optional image.
func (a *API) CreateEventWithImage(c *gin.Context) {
	fields, upload, err := a.parseMultipart(c, eventFormFields...)
	if err != nil {
		a.respondServiceError(c, err, "failed to read upload")
		return
	}
	input := service.EventInput{
		DateEN:     fields.text("date_en"),
		DateFR:     fields.text("date_fr"),
		TitleEN:    fields.text("title_en"),
		TitleFR:    fields.text("title_fr"),
		LocationEN: fields.text("location_en"),
		LocationFR: fields.text("location_fr"),
		SummaryEN:  fields.text("summary_en"),
		SummaryFR:  fields.text("summary_fr"),
		MediaKey:   fields.text("media_key"),
		ImageURL:   fields.text("image_url"),
	}
	if order := fields.integer("order"); order != nil {
		input.Order = *order
	}
	if err := fields.err(); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}

	item, err := a.events.CreateWithImage(c.Request.Context(), input, upload)
	if err != nil {
		a.respondServiceError(c, err, "failed to create event")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateEvent merges a JSON patch into an event.
func (a *API) UpdateEvent(c *gin.Context) {
	var patch service.EventPatch
	if err := bindStrictJSON(c, &patch); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	item, err := a.events.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		a.respondServiceError(c, err, "failed to update event")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateEventWithImage merges multipart fields and optionally replaces the image.
func (a *API) UpdateEventWithImage(c *gin.Context) {
	fields, upload, err := a.parseMultipart(c, eventFormFields...)
	if err != nil {
		a.respondServiceError(c, err, "failed to read upload")
		return
	}
	patch := eventPatchFromForm(fields)
	if err := fields.err(); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}

	item, err := a.events.UpdateWithImage(c.Request.Context(), c.Param("id"), patch, upload)
	if err != nil {
		a.respondServiceError(c, err, "failed to update event")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteEvent removes an event.
func (a *API) DeleteEvent(c *gin.Context) {
	if err := a.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondServiceError(c, err, "failed to delete event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

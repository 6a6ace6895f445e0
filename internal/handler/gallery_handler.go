package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
)

var galleryFormFields = []string{"title_en", "title_fr", "image_url", "media_key", "order"}

// ListGalleryItems returns all gallery items in display order.
func (a *API) ListGalleryItems(c *gin.Context) {
	items, err := a.gallery.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list gallery items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetGalleryItem returns one gallery item.
func (a *API) GetGalleryItem(c *gin.Context) {
	item, err := a.gallery.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load gallery item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateGalleryItem creates a gallery item that references an existing image.
func (a *API) CreateGalleryItem(c *gin.Context) {
	var input service.GalleryInput
	if err := bindStrictJSON(c, &input); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	item, err := a.gallery.Create(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "failed to create gallery item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// CreateGalleryItemWithImage creates a gallery item and stores its uploaded image.
func (a *API) CreateGalleryItemWithImage(c *gin.Context) {
	fields, upload, err := a.parseMultipart(c, galleryFormFields...)
	if err != nil {
		a.respondServiceError(c, err, "failed to read upload")
		return
	}
	input := service.GalleryInput{
		TitleEN:  fields.text("title_en"),
		TitleFR:  fields.text("title_fr"),
		ImageURL: fields.text("image_url"),
		MediaKey: fields.text("media_key"),
	}
	if order := fields.integer("order"); order != nil {
		input.Order = *order
	}
	if err := fields.err(); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}

	item, err := a.gallery.CreateWithImage(c.Request.Context(), input, upload)
	if err != nil {
		a.respondServiceError(c, err, "failed to create gallery item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateGalleryItem merges a JSON patch into a gallery item.
func (a *API) UpdateGalleryItem(c *gin.Context) {
	var patch service.GalleryPatch
	if err := bindStrictJSON(c, &patch); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	item, err := a.gallery.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		a.respondServiceError(c, err, "failed to update gallery item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateGalleryItemWithImage merges multipart fields and optionally replaces the image.
func (a *API) UpdateGalleryItemWithImage(c *gin.Context) {
	fields, upload, err := a.parseMultipart(c, galleryFormFields...)
	if err != nil {
		a.respondServiceError(c, err, "failed to read upload")
		return
	}
	patch := service.GalleryPatch{
		TitleEN:  fields.str("title_en"),
		TitleFR:  fields.str("title_fr"),
		ImageURL: fields.str("image_url"),
		MediaKey: fields.str("media_key"),
		Order:    fields.integer("order"),
	}
	if err := fields.err(); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}

	item, err := a.gallery.UpdateWithImage(c.Request.Context(), c.Param("id"), patch, upload)
	if err != nil {
		a.respondServiceError(c, err, "failed to update gallery item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteGalleryItem removes a gallery item. The underlying media asset is kept.
func (a *API) DeleteGalleryItem(c *gin.Context) {
	if err := a.gallery.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondServiceError(c, err, "failed to delete gallery item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gallery item deleted"})
}

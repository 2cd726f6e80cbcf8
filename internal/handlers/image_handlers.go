package handlers

import (
	"errors"
	"net/http"
	"time"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/services"

	"github.com/labstack/echo/v4"
)

// ImageHandlers exposes the image ingestion service over HTTP.
type ImageHandlers struct {
	imageService services.ImageService
	urlExpiry    time.Duration
}

func NewImageHandlers(imageService services.ImageService, urlExpiry time.Duration) *ImageHandlers {
	return &ImageHandlers{imageService: imageService, urlExpiry: urlExpiry}
}

// UploadImage handles POST /products/:id/images with the file in the
// multipart field "image".
func (h *ImageHandlers) UploadImage(c echo.Context) error {
	var upload *models.FileUpload

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		src, err := fh.Open()
		if err != nil {
			return common.SendKindError(c, common.E(common.KindIOFailure, "", "Failed to open image file", err))
		}
		defer src.Close()
		upload = &models.FileUpload{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Reader:      src,
		}
	case errors.Is(err, http.ErrMissingFile):
		// reported as EmptyInput by the service, after the product check
	default:
		return common.SendValidationError(c, map[string]string{"image": "request must be multipart/form-data"})
	}

	result := h.imageService.Upload(c.Request().Context(), c.Param("id"), upload)
	if !result.Success {
		return c.JSON(common.HTTPStatus(result.Kind), result)
	}
	return c.JSON(http.StatusCreated, result)
}

// RemoveImage handles DELETE /images/:id
func (h *ImageHandlers) RemoveImage(c echo.Context) error {
	result := h.imageService.Remove(c.Request().Context(), c.Param("id"))
	if !result.Success {
		return c.JSON(common.HTTPStatus(result.Kind), result)
	}
	return c.JSON(http.StatusOK, result)
}

// GetImage handles GET /images/:id
func (h *ImageHandlers) GetImage(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "image_id")
	if !ok {
		return err
	}
	image, err := h.imageService.Get(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, image)
}

// ListProductImages handles GET /products/:id/images
func (h *ImageHandlers) ListProductImages(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "product_id")
	if !ok {
		return err
	}
	images, err := h.imageService.ListByProduct(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"images": images,
		"count":  len(images),
	})
}

// GetImageContent handles GET /images/:id/content and streams the blob.
func (h *ImageHandlers) GetImageContent(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "image_id")
	if !ok {
		return err
	}
	image, rc, err := h.imageService.Open(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	defer rc.Close()

	hdr := c.Response().Header()
	hdr.Set("Cache-Control", "public, max-age=86400, immutable")
	hdr.Set(echo.HeaderXContentTypeOptions, "nosniff")
	return c.Stream(http.StatusOK, image.ContentType, rc)
}

// GetImageURL handles GET /images/:id/url?expiry=1h
func (h *ImageHandlers) GetImageURL(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "image_id")
	if !ok {
		return err
	}

	expiry := h.urlExpiry
	if raw := c.QueryParam("expiry"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 || d > 7*24*time.Hour {
			return common.SendValidationError(c, map[string]string{"expiry": "expiry must be a duration between 1s and 168h"})
		}
		expiry = d
	}

	url, err := h.imageService.URL(c.Request().Context(), id, expiry)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"url":        url,
		"expires_in": int(expiry.Seconds()),
	})
}

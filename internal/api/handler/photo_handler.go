package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/schoolshots/photo-intake/internal/core/domain"
	"github.com/schoolshots/photo-intake/internal/core/ports"
)

// multipartOverhead is the allowance on top of the file cap for form fields
// and part headers.
const multipartOverhead = 1 << 20

// PhotoHandler handles photo intake and moderation.
type PhotoHandler struct {
	service        ports.PhotoService
	maxUploadBytes int64
}

func NewPhotoHandler(service ports.PhotoService, maxUploadBytes int64) *PhotoHandler {
	return &PhotoHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// List handles GET /photos. Clients are always limited to their own school.
//
// @Summary      List photos
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        schoolCode  query     string  false  "School code (admins only)"
// @Param        status      query     string  false  "pending, approved or rejected"
// @Param        migrated    query     bool    false  "Mirrored to Drive"
// @Success      200         {object}  photoListResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /photos [get]
func (h *PhotoHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	filter := ports.PhotoFilter{
		SchoolCode: c.QueryParam("schoolCode"),
		Status:     domain.PhotoStatus(c.QueryParam("status")),
	}
	if raw := c.QueryParam("migrated"); raw != "" {
		migrated, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "migrated must be true or false")
		}
		filter.Migrated = &migrated
	}

	photos, err := h.service.List(c.Request().Context(), p, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photoListResponse{Photos: photos, Total: len(photos)})
}

// Submit handles POST /photos (multipart, field "file").
//
// @Summary      Upload a photo
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file        formData  file    true   "Photo"
// @Param        schoolCode  formData  string  false  "Target school (admins only)"
// @Success      201         {object}  photoResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /photos [post]
func (h *PhotoHandler) Submit(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxUploadBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > h.maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("file exceeds the %d byte limit", h.maxUploadBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	photo, err := h.service.Submit(req.Context(), p, ports.SubmitPhotoInput{
		SchoolCode: c.FormValue("schoolCode"),
		FileName:   fh.Filename,
		Size:       fh.Size,
		MimeType:   fh.Header.Get(echo.HeaderContentType),
		Body:       f,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, photoResponse{Success: true, Photo: photo, Message: "photo uploaded"})
}

// Approve handles POST /photos/:id/approve.
//
// @Summary      Approve a photo and mirror it to Drive
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Photo ID"
// @Success      200  {object}  approvalResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /photos/{id}/approve [post]
func (h *PhotoHandler) Approve(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	res, err := h.service.Approve(c.Request().Context(), p, id)
	if err != nil {
		return err
	}

	msg := "photo approved and mirrored"
	if res.MirrorStatus != ports.MirrorUploaded {
		msg = "photo approved; mirror skipped or failed"
	}
	return c.JSON(http.StatusOK, approvalResponse{
		Success:      true,
		Photo:        res.Photo,
		MirrorStatus: res.MirrorStatus,
		MirrorError:  res.MirrorError,
		Message:      msg,
	})
}

// Reject handles POST /photos/:id/reject.
//
// @Summary      Reject a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Photo ID"
// @Success      200  {object}  photoResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /photos/{id}/reject [post]
func (h *PhotoHandler) Reject(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	photo, err := h.service.Reject(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photoResponse{Success: true, Photo: photo, Message: "photo rejected"})
}

// Delete handles DELETE /photos/:id.
//
// @Summary      Delete a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Photo ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /photos/{id} [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "photo deleted"})
}

// Events handles GET /photos/:id/events.
//
// @Summary      Audit trail of a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Photo ID"
// @Success      200  {object}  photoEventsResponse
// @Router       /photos/{id}/events [get]
func (h *PhotoHandler) Events(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	events, err := h.service.Events(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if events == nil {
		events = []domain.PhotoEvent{}
	}
	return c.JSON(http.StatusOK, photoEventsResponse{Events: events, Total: len(events)})
}

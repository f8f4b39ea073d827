package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/services"
	"hotel-admin/utils"
)

const internalServerError = "Internal server error"

// parseIDParam reads the :id path parameter; it writes a 400 and returns
// false when the value is not a positive integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto status codes. Anything unexpected is
// logged and reported as a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, services.ErrDuplicateRoomNumber):
		utils.JSONError(c, http.StatusConflict, "Room number already exists")
	case errors.Is(err, services.ErrDuplicateMac):
		utils.JSONError(c, http.StatusConflict, "MAC address is already registered to another room")
	case errors.Is(err, services.ErrDuplicateUser):
		utils.JSONError(c, http.StatusConflict, "Username or email already exists")
	case errors.Is(err, services.ErrInvalidReference):
		utils.JSONError(c, http.StatusBadRequest, "Unknown group or room")
	case errors.Is(err, services.ErrInvalidUpload):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		utils.JSONError(c, http.StatusInternalServerError, internalServerError)
	}
}

// parseOptionalID reads an optional id from a form value; "" and "null" mean none.
func parseOptionalID(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" || raw == "undefined" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invalid id %q", raw)
	}
	v := uint(id)
	return &v, nil
}

// optionalID decodes null, "", a number or a numeric string. The dashboard
// resets unselected dropdowns to "".
type optionalID struct {
	Value *uint
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	raw := string(bytes.TrimSpace(b))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	v, err := parseOptionalID(raw)
	if err != nil {
		return err
	}
	o.Value = v
	return nil
}

// flexBool decodes true/false, 1/0 and their string forms.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	raw := string(bytes.TrimSpace(b))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	if raw == "" || raw == "null" {
		*f = false
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", raw)
	}
	*f = flexBool(v)
	return nil
}

// optionalFile returns the uploaded file under field, or nil when the request
// carries none.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}

// formFiles returns every file uploaded under field.
func formFiles(c *gin.Context, field string) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return form.File[field], nil
}

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/anonto42/campus-social/backend/internal/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxImageSize = 5 << 20

const genericFailure = "Something went wrong"

// ok writes the success envelope with payload merged in
func ok(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// ErrorHandler renders every failure as {success:false, message}. Typed
// service errors keep their message; anything unexpected is logged and
// reported generically.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := errorBody(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err))
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("writing error response", zap.Error(err))
		}
	}
}

func errorBody(err error) (int, echo.Map) {
	var se *services.Error
	if errors.As(err, &se) {
		return statusFor(se.Kind), echo.Map{"success": false, "message": se.Message}
	}
	if fields := validators.FieldErrors(err); fields != nil {
		return http.StatusBadRequest, echo.Map{"success": false, "message": "validation failed", "errors": fields}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, echo.Map{"success": false, "message": fmt.Sprint(he.Message)}
	}
	return http.StatusInternalServerError, echo.Map{"success": false, "message": genericFailure}
}

func statusFor(k services.Kind) int {
	switch k {
	case services.KindAuth:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// normalizer is implemented by requests that clean up their input before
// validation
type normalizer interface {
	Normalize()
}

// bindAndValidate binds the request into req and runs its validate tags
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// formImage reads the optional "image" file of a multipart request
func formImage(c echo.Context) (*services.Image, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
	}
	if fh.Size > maxImageSize {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image is larger than 5MB")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}
	return &services.Image{Data: data, Filename: fh.Filename, ContentType: contentType}, nil
}

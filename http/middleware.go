package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"boxoffice/entity"
)

// corsMiddleware answers preflights with 200 rather than echo's default 204,
// which is what the storefront expects.
func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, User-Agent")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := err.Error()

	var (
		validationErr entity.ValidationError
		notFoundErr   entity.NotFoundError
		configErr     entity.ConfigurationError
		gatewayErr    entity.GatewayError
		transportErr  entity.TransportError
		httpErr       *echo.HTTPError
	)
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &configErr):
		status = http.StatusInternalServerError
	case errors.As(err, &gatewayErr):
		status = gatewayErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
	case errors.As(err, &transportErr):
		status = http.StatusInternalServerError
		message = "upstream service unavailable"
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	}

	if jsonErr := c.JSON(status, errorResponse{Success: false, Error: message}); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}

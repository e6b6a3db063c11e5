package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boxoffice/entity"
)

type eventsResponse struct {
	Success bool           `json:"success"`
	Events  []entity.Event `json:"events"`
}

func (s Server) GetEvents(c echo.Context) error {
	events := s.service.Events()
	if events == nil {
		events = []entity.Event{}
	}

	return c.JSON(http.StatusOK, eventsResponse{
		Success: true,
		Events:  events,
	})
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"boxoffice/entity"
)

type sendTicketEmailRequest struct {
	Email string `json:"email"`
}

type sendTicketEmailResponse struct {
	Success  bool   `json:"success"`
	TicketID string `json:"ticketId"`
	Message  string `json:"message"`
}

func (s Server) PostSendTicketEmail(c echo.Context) error {
	ticketID := c.Param("ticketId")
	if ticketID == "" {
		return entity.ValidationError{Reason: "ticket ID required"}
	}

	var request sendTicketEmailRequest
	if err := c.Bind(&request); err != nil {
		return entity.ValidationError{Reason: "invalid request body"}
	}

	err := s.service.ResendTicketEmail(c.Request().Context(), ticketID, request.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sendTicketEmailResponse{
		Success:  true,
		TicketID: ticketID,
		Message:  "ticket email queued for delivery",
	})
}

type walletPassResponse struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	PassData json.RawMessage `json:"passData"`
}

// GetWalletPass describes the Apple Wallet pass for a ticket. Signing passes
// needs Apple certificates, so for now the endpoint returns the unsigned pass
// structure with a 501.
func (s Server) GetWalletPass(c echo.Context) error {
	ticketID := c.Param("ticketId")
	if ticketID == "" {
		return entity.ValidationError{Reason: "ticket ID required"}
	}

	ticket, err := s.service.Ticket(c.Request().Context(), ticketID)
	if err != nil {
		return err
	}

	var event entity.Event
	found := false
	for _, e := range s.service.Events() {
		if e.ID == ticket.EventID {
			event = e
			found = true
			break
		}
	}
	if !found {
		return entity.ErrEventNotFound
	}

	categoryName := ""
	for _, category := range event.TicketCategories {
		if category.ID == ticket.CategoryID {
			categoryName = category.Name
			break
		}
	}

	passData, err := json.Marshal(map[string]any{
		"formatVersion":      1,
		"passTypeIdentifier": "pass.com.boxoffice.event",
		"serialNumber":       ticket.ID,
		"description":        event.Name,
		"eventTicket": map[string]any{
			"primaryFields": []map[string]string{
				{"key": "event", "label": "Event", "value": event.Name},
			},
			"secondaryFields": []map[string]string{
				{"key": "date", "label": "Date", "value": event.Date},
				{"key": "time", "label": "Time", "value": event.Time},
			},
			"auxiliaryFields": []map[string]string{
				{"key": "venue", "label": "Venue", "value": event.Venue},
				{"key": "category", "label": "Category", "value": categoryName},
			},
			"backFields": []map[string]string{
				{"key": "ticketId", "label": "Ticket ID", "value": ticket.ID},
			},
			"barcode": map[string]string{
				"message":         ticket.ID,
				"format":          "PKBarcodeFormatQR",
				"messageEncoding": "iso-8859-1",
			},
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusNotImplemented, walletPassResponse{
		Success:  false,
		Error:    "Apple Wallet pass generation not configured",
		Message:  "signing requires Apple certificates",
		PassData: passData,
	})
}

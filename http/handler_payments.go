package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boxoffice/entity"
)

func (s Server) PostCreatePayment(c echo.Context) error {
	var request entity.PurchaseRequest
	if err := c.Bind(&request); err != nil {
		return entity.ValidationError{Reason: "invalid request body"}
	}

	result, err := s.service.CreatePurchase(c.Request().Context(), request)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (s Server) GetPaymentStatus(c echo.Context) error {
	paymentID := c.Param("paymentId")
	if paymentID == "" {
		return entity.ValidationError{Reason: "payment ID required"}
	}

	result, err := s.service.Status(c.Request().Context(), paymentID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

type sendReceiptResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s Server) PostSendReceipt(c echo.Context) error {
	paymentID := c.Param("paymentId")
	if paymentID == "" {
		return entity.ValidationError{Reason: "payment ID required"}
	}

	if err := s.service.SendReceipt(c.Request().Context(), paymentID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sendReceiptResponse{
		Success: true,
		Message: "receipt queued for delivery",
	})
}

package notification

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"boxoffice/entity"
)

// renderTicketPDF produces a one-page printable ticket with the QR code
// embedded. The same PNG goes into the email body and the PDF.
func renderTicketPDF(event entity.Event, categoryName, ticketID string, qrPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, event.Name, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(40, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	row("Date", event.Date)
	row("Time", event.Time)
	row("Venue", event.Venue)
	row("Address", event.Address)
	row("Category", categoryName)
	row("Ticket ID", ticketID)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(ticketID, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(ticketID, 80, pdf.GetY()+10, 50, 50, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("could not render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

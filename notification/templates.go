package notification

import "html/template"

var ticketEmailTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .ticket { background: #f5f5f5; border: 2px solid #00a8ff; border-radius: 12px; padding: 20px; margin: 20px 0; }
    .ticket-header { text-align: center; margin-bottom: 20px; }
    .ticket-title { font-size: 24px; font-weight: bold; color: #00a8ff; }
    .ticket-info { margin: 10px 0; }
    .ticket-label { font-weight: bold; }
    .ticket-id { font-family: monospace; background: #fff; padding: 5px 10px; border-radius: 4px; }
    .qr-code { text-align: center; margin: 20px 0; }
    .qr-code img { max-width: 200px; height: auto; border: 2px solid #00a8ff; border-radius: 8px; padding: 10px; background: white; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Your ticket</h1>
    <div class="ticket">
      <div class="ticket-header">
        <div class="ticket-title">{{.EventName}}</div>
      </div>
      <div class="ticket-info"><span class="ticket-label">Event:</span> {{.EventName}}</div>
      <div class="ticket-info"><span class="ticket-label">Date:</span> {{.Date}}</div>
      <div class="ticket-info"><span class="ticket-label">Time:</span> {{.Time}}</div>
      <div class="ticket-info"><span class="ticket-label">Venue:</span> {{.Venue}}</div>
      {{if .Address}}<div class="ticket-info"><span class="ticket-label">Address:</span> {{.Address}}</div>{{end}}
      {{if .CategoryName}}<div class="ticket-info"><span class="ticket-label">Category:</span> {{.CategoryName}}</div>{{end}}
      <div class="ticket-info">
        <span class="ticket-label">Ticket ID:</span>
        <span class="ticket-id">{{.TicketID}}</span>
      </div>
      <div class="qr-code">
        <img src="cid:{{.QRCid}}" alt="QR code for ticket {{.TicketID}}" />
      </div>
    </div>
    <p>Show this ticket at the entrance. The QR code carries the ticket details.</p>
  </div>
</body>
</html>
`))

var receiptEmailTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; background: #f5f5f5; }
    .container { max-width: 600px; margin: 20px auto; background: white; padding: 30px; border-radius: 8px; }
    .header { text-align: center; border-bottom: 2px solid #00a8ff; padding-bottom: 20px; margin-bottom: 30px; }
    .header h1 { color: #00a8ff; margin: 0; font-size: 28px; }
    .info-row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #eee; }
    .info-label { font-weight: bold; color: #666; }
    .item { padding: 15px; background: #f9f9f9; border-radius: 6px; margin-bottom: 10px; }
    .item-name { font-weight: bold; font-size: 16px; color: #00a8ff; margin-bottom: 8px; }
    .total-row { display: flex; justify-content: space-between; font-size: 18px; font-weight: bold; padding: 10px 0; border-top: 2px solid #00a8ff; margin-top: 20px; }
    .total-value { color: #00a8ff; font-size: 24px; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #999; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Payment receipt</h1>
      <p style="color: #666; margin: 5px 0;">Informational document</p>
    </div>
    <div class="info-row"><span class="info-label">Payment ID:</span> <span>{{.PaymentID}}</span></div>
    <div class="info-row"><span class="info-label">Date:</span> <span>{{.Date}}</span></div>
    <div class="info-row"><span class="info-label">Status:</span> <span>Paid</span></div>
    {{if .Description}}<div class="item"><div class="item-name">{{.Description}}</div></div>{{end}}
    {{range .TicketIDs}}<div class="item"><div class="item-name">Ticket {{.}}</div></div>{{end}}
    <div class="total-row">
      <span>Total:</span>
      <span class="total-value">{{.Amount}} {{.Currency}}</span>
    </div>
    <div class="footer">
      <p>This receipt is informational and is not a fiscal document.</p>
    </div>
  </div>
</body>
</html>
`))

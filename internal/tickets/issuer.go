package tickets

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"eventspark/internal/models"
)

// Issuer derives tickets from (bookingID, seatID). It holds no state, so
// issuing the same pair twice yields byte-identical output. Booking and seat
// ids are UUIDs and cannot contain the underscore separator, so distinct
// pairs never collide.
type Issuer struct {
	qrSize int
}

func NewIssuer() *Issuer {
	return &Issuer{qrSize: 256}
}

func (i *Issuer) Issue(event *models.Event, bookingID string, seat models.Seat) (models.Ticket, error) {
	code := fmt.Sprintf("QR_%s_%s_%s", event.EventID, bookingID, seat.SeatID)

	png, err := qrcode.Encode(code, qrcode.Medium, i.qrSize)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("encode ticket QR: %w", err)
	}

	return models.Ticket{
		TicketID: fmt.Sprintf("ticket_%s_%s", bookingID, seat.SeatID),
		SeatID:   seat.SeatID,
		SeatInfo: seat.Label(),
		QRCode:   code,
		QRImage:  png,
	}, nil
}

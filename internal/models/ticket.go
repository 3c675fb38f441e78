package models

// Ticket is derived from a (booking, seat) pair. It is never stored: the
// issuer regenerates byte-identical tickets from the same pair on demand.
type Ticket struct {
	TicketID string `json:"ticketId"`
	SeatID   string `json:"seatId"`
	SeatInfo string `json:"seatInfo"`
	QRCode   string `json:"qrCode"`
	QRImage  []byte `json:"qrImage,omitempty"`
}

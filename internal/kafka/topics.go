package kafka

// Topics consumed by downstream services (notifications, analytics).
const (
	TopicBookingConfirmed  = "booking-confirmed"
	TopicBookingCancelled  = "booking-cancelled"
	TopicSeatStatusChanged = "seat-status-changed"
)

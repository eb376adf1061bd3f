package cancel_booking

// CancelBookingResponse HTTP response model. Повторная отмена отвечает
// так же, как первая: операция идемпотентна.
type CancelBookingResponse struct {
	Ok               bool `json:"ok"`
	AlreadyCancelled bool `json:"alreadyCancelled,omitempty"`
}

package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64
}

// Response модель ответа на отмену. Отмена идемпотентна: повторная
// отмена уже отменённого бронирования — успешный no-op.
type Response struct {
	Ok               bool
	AlreadyCancelled bool
}

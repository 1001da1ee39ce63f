package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда мастер не найден или неактивен
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому мастеру
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrInvalidTime возвращается, когда время начала не в будущем
	// или нарушает минимальный запас до начала
	ErrInvalidTime = errors.New("create_booking: invalid booking time")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается в рабочие часы мастера
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside working hours")

	// ErrSlotConflict возвращается, когда слот пересекается с активным бронированием
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

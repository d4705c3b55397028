package create_booking

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("create_booking: barber not found")

	// ErrBarberInactive возвращается, когда барбер деактивирован
	ErrBarberInactive = errors.New("create_booking: barber is inactive")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDayClosed возвращается, когда барбер не работает в указанную дату
	ErrDayClosed = errors.New("create_booking: barber does not work on this date")

	// ErrInvalidSlot возвращается, когда выбранное время не лежит на сетке
	// слотов рабочего дня
	ErrInvalidSlot = errors.New("create_booking: requested time is not a valid slot")

	// ErrPastTime возвращается при попытке забронировать прошедшее время сегодня
	ErrPastTime = errors.New("create_booking: requested time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStorage возвращается при сбоях хранилища; ошибка транзиентная,
	// вызывающая сторона может повторить запрос с backoff
	ErrStorage = errors.New("create_booking: storage failure")

	// ErrInternal возвращается при прочих внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

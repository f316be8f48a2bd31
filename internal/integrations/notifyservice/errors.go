package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")

	// ErrDeliveryFailed возвращается, когда ни основной API, ни push-шлюз не приняли уведомление
	ErrDeliveryFailed = errors.New("notifyservice client: delivery failed on all endpoints")
)

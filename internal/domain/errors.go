package domain

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrExternalService = errors.New("exchange rate service failed")
	ErrPersistence     = errors.New("invoice store failed")
)

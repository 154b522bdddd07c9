package domain

import "errors"

var (
	ErrNotRegistered         = errors.New("identity not registered")
	ErrAlreadyRegistered     = errors.New("identity already registered")
	ErrWrongRole             = errors.New("wrong role for operation")
	ErrInvalidRoleTransition = errors.New("invalid role transition")
	ErrInvalidQuantity       = errors.New("quantity must be greater than zero")
	ErrProductNotFound       = errors.New("product not found")
	ErrEmptyCatalog          = errors.New("no products found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidState          = errors.New("invalid order state for transition")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated          = errors.New("order already rated")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInternal              = errors.New("internal error")
	ErrStorageUnavailable    = errors.New("storage unavailable")
)

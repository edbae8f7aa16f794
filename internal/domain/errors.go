package domain

import "errors"

var (
	// ErrInvalidArgument marks a quantity, price or stock parameter outside its allowed range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientStock marks a sale that asks for more units than are available.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrIllegalTransition marks a mutation of an order that has already been billed.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrDuplicateItem marks an attempt to add a second catalog item with an existing name.
	ErrDuplicateItem = errors.New("duplicate item")
)

package models

import (
	"errors"
)

var (
	// ErrGeneral covers database errors we cannot translate into
	// something the caller can act upon.
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrResourceNotFound is completed by the query callback with the
	// name of the resource that was requested.
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrAmountNotPositive      = errors.New("amounts must be larger than zero")
	ErrTransactionTypeInvalid = errors.New("transaction type must be income or expense")
	ErrCategoryTypeInvalid    = errors.New("category type must be income, expense or both")
	ErrAccountNameNotUnique   = errors.New("the account name must be unique")
	ErrCategoryNameNotUnique  = errors.New("the category name must be unique")
	ErrPayeeNameNotUnique     = errors.New("the payee name must be unique")
	ErrProjectNameNotUnique   = errors.New("the project name must be unique")
	ErrTagNameNotUnique       = errors.New("the tag name must be unique")
	ErrMemberJoinDateMissing  = errors.New("members must have a join date")
	ErrPaymentMonthMissing    = errors.New("payments must have a reference month")
)

package ledger

import "errors"

var (
	ErrNotIncome     = errors.New("only income transactions can be linked to payments")
	ErrNotExpense    = errors.New("only expense transactions can settle a payable bill")
	ErrDuplicateLink = errors.New("each member and reference month can only appear once in the requested links")

	ErrInvalidTransfer = errors.New("the source and destination account of a transfer must be different")
	ErrTransferLeg     = errors.New("the transaction is one leg of a transfer, delete the transfer instead")

	ErrBillAlreadyLinked   = errors.New("the bill is already linked to a different transaction")
	ErrBillNotLinked       = errors.New("the bill is not linked to a transaction")
	ErrReferentialConflict = errors.New("the bill is linked to a transaction, unlink it first")
	ErrScopeRequired       = errors.New("deleting a bill of an installment or recurring series requires an explicit scope")
	ErrScopeInvalid        = errors.New("the delete scope must be single or this-and-future")
	ErrScopeNeedsGroup     = errors.New("the this-and-future scope requires the bill to belong to an installment or recurring series")

	ErrInstallmentCount = errors.New("installments need a count of at least two")

	// ErrInconsistentLinkAmount is advisory. The linking operation still
	// commits, it is returned to the caller as a warning: partial dues
	// payments are allowed by design of the dues model.
	ErrInconsistentLinkAmount = errors.New("the linked payments do not add up to the transaction amount")
)

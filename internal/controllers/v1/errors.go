package v1

import (
	"errors"
	"net/http"

	"github.com/tesouraria/backend/internal/ledger"
	"github.com/tesouraria/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no payable bill matching your query"`
}

// status returns the appropriate HTTP status for an engine or database
// error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, ledger.ErrBillAlreadyLinked) ||
		errors.Is(err, ledger.ErrReferentialConflict) ||
		errors.Is(err, ledger.ErrScopeRequired) ||
		errors.Is(err, ledger.ErrTransferLeg) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var (
	errDimensionInvalid = errors.New("the report dimension must be category, project or tag")
	errRangeRequired    = errors.New("the start and end query parameters must be set")
)

package service

import (
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripbudget/internal/calculator"
	"github.com/mmynk/tripbudget/internal/storage"
)

// toConnectError maps domain and storage errors to Connect codes.
func toConnectError(op string, err error) error {
	var verr *calculator.ValidationError
	var cerr *calculator.ConsistencyError
	switch {
	case errors.As(err, &verr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.As(err, &cerr):
		slog.Error(op+": balances are inconsistent",
			"unmatched_debt", cerr.UnmatchedDebt,
			"unmatched_credit", cerr.UnmatchedCredit,
		)
		return connect.NewError(connect.CodeInternal, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(field, reason string) error {
	return connect.NewError(connect.CodeInvalidArgument, &calculator.ValidationError{Field: field, Reason: reason})
}

func httpStatus(err error) int {
	switch connect.CodeOf(err) {
	case connect.CodeInvalidArgument:
		return http.StatusBadRequest
	case connect.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package api

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/errs"
)

var errInternal = errors.New("internal error")

// toConnectError maps a service error to a Connect error. Server faults are
// reported without their cause.
func toConnectError(err error) error {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errs.KindNotFound:
		return connect.NewError(connect.CodeNotFound, err)
	case errs.KindUnauthorized:
		return connect.NewError(connect.CodePermissionDenied, err)
	case errs.KindConflict:
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, errInternal)
	}
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/circleledger/internal/middleware"
	"github.com/mmynk/circleledger/internal/models"
	"github.com/mmynk/circleledger/pkg/api"
)

var (
	errAuthRequired = errors.New("authentication required")
	errInternal     = errors.New("internal error")
)

// actor returns the authenticated member or an Unauthenticated error.
func actor(ctx context.Context) (string, error) {
	memberID := middleware.GetMemberID(ctx)
	if memberID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return memberID, nil
}

// toConnectError maps a ledger error to its Connect code and attaches the
// ledger error code as response metadata. Internal failures are logged and
// replaced by an opaque message.
func toConnectError(ctx context.Context, procedure string, err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code := codeOf(err)
	ledgerCode := models.ErrorCode(err)
	if code == connect.CodeInternal {
		slog.ErrorContext(ctx, procedure+" failed", "error", err)
		err = errInternal
	}

	connectErr = connect.NewError(code, err)
	if ledgerCode != "" {
		connectErr.Meta().Set(api.ErrorCodeHeader, ledgerCode)
	}
	return connectErr
}

func codeOf(err error) connect.Code {
	switch {
	case models.IsValidation(err):
		return connect.CodeInvalidArgument
	case models.IsNotFound(err):
		return connect.CodeNotFound
	case models.IsConflict(err):
		return connect.CodeAborted
	case errors.Is(err, models.ErrPermissionDenied):
		return connect.CodePermissionDenied
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	}
	return connect.CodeInternal
}

package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrPastDate = apperror.New(
		apperror.CodeInvalidInput,
		"leave cannot start before today",
		http.StatusBadRequest,
	)
	ErrCrossYearNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"leave must start and end within the current calendar year",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"requested range contains no working days",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient leave balance",
		http.StatusConflict,
	)
	ErrExceedsConsecutiveLimit = apperror.New(
		apperror.CodeInvalidInput,
		"request exceeds the consecutive working day limit",
		http.StatusBadRequest,
	)
	ErrOverlapConflict = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"leave request has already been processed",
		http.StatusConflict,
	)
	ErrAlreadyCancelled = apperror.New(
		apperror.CodeInvalidState,
		"leave request is already cancelled",
		http.StatusConflict,
	)
	ErrSelfApprovalForbidden = apperror.New(
		apperror.CodeForbidden,
		"you cannot approve or reject your own leave request",
		http.StatusForbidden,
	)
	ErrOutOfScope = apperror.New(
		apperror.CodeForbidden,
		"leave request is outside your approval scope",
		http.StatusForbidden,
	)
	ErrNotRecordOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting employee can cancel this leave",
		http.StatusForbidden,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"comment is required when rejecting a leave request",
		http.StatusBadRequest,
	)

	// ErrLedgerInvariant means a debit or refund would break the balance
	// invariant even though the earlier check passed. It signals a
	// concurrency bug and aborts the whole transition.
	ErrLedgerInvariant = apperror.New(
		apperror.CodeInternalError,
		"leave balance invariant violated",
		http.StatusInternalServerError,
	)
)

package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// 5XX
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	RequestTimeout       ErrorCode = "REQUEST_TIMEOUT"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	NotFound             ErrorCode = "NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"
	Forbidden            ErrorCode = "FORBIDDEN"

	// state gate
	WrongState ErrorCode = "WRONG_STATE"
	Locked     ErrorCode = "LOCKED"
	Paused     ErrorCode = "PAUSED"

	// balances
	InsufficientBalance   ErrorCode = "INSUFFICIENT_BALANCE"
	InsufficientAllowance ErrorCode = "INSUFFICIENT_ALLOWANCE"
	InsufficientClaimable ErrorCode = "INSUFFICIENT_CLAIMABLE"
	InsufficientRewarded  ErrorCode = "INSUFFICIENT_REWARDED"
	InsufficientStake     ErrorCode = "INSUFFICIENT_STAKE"
	NoStake               ErrorCode = "NO_STAKE"

	// timing
	NotReady              ErrorCode = "NOT_READY"
	NotEnded              ErrorCode = "NOT_ENDED"
	VotingEnded           ErrorCode = "VOTING_ENDED"
	Expired               ErrorCode = "EXPIRED"
	NotNominated          ErrorCode = "NOT_NOMINATED"
	AlreadyInitialized    ErrorCode = "ALREADY_INITIALIZED"
	EpochSynced           ErrorCode = "EPOCH_SYNCED"
	NoGovernBootstrapping ErrorCode = "NO_GOVERN_BOOTSTRAPPING"

	// governance outcome
	NoQuorum              ErrorCode = "NO_QUORUM"
	NotApproved           ErrorCode = "NOT_APPROVED"
	MustHaveSuperMajority ErrorCode = "MUST_HAVE_SUPER_MAJORITY"
	UnknownImplementation ErrorCode = "UNKNOWN_IMPLEMENTATION"

	// market
	PriceGated    ErrorCode = "PRICE_GATED"
	OracleInvalid ErrorCode = "ORACLE_INVALID"

	// authorization
	NotDao    ErrorCode = "NOT_DAO"
	NotMinter ErrorCode = "NOT_MINTER"
)

// Error represents an error with an HTTP status code and an application-specific error code.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

const UninitializedStatusCode = 0

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same ErrorCode, so sentinel errors
// survive being re-wrapped with a different message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.ErrorCode == e.ErrorCode
}

// NewError creates a new Error with the provided status code, error code, and underlying error.
// If the status code is not provided (0), it defaults to http.StatusInternalServerError(500).
// If the error code is empty, it defaults to INTERNAL_SERVICE_ERROR.
func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	if statusCode == UninitializedStatusCode {
		statusCode = http.StatusInternalServerError
	}
	if errorCode == "" {
		errorCode = InternalServiceError
	}
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}

// AsError converts any error into an *Error, defaulting to an internal error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternalServiceError(err)
}

// Protocol errors. Messages follow the revert reasons users already know.
var (
	ErrWrongState = NewErrorWithMsg(http.StatusForbidden, WrongState, "Permission: Not frozen")
	ErrLocked     = NewErrorWithMsg(http.StatusForbidden, Locked, "Permission: Locked")
	ErrPaused     = NewErrorWithMsg(http.StatusForbidden, Paused, "Paused")

	ErrInsufficientStaged    = NewErrorWithMsg(http.StatusBadRequest, InsufficientBalance, "insufficient staged balance")
	ErrInsufficientBonded    = NewErrorWithMsg(http.StatusBadRequest, InsufficientBalance, "insufficient bonded balance")
	ErrInsufficientBalance   = NewErrorWithMsg(http.StatusBadRequest, InsufficientBalance, "transfer amount exceeds balance")
	ErrInsufficientAllowance = NewErrorWithMsg(http.StatusBadRequest, InsufficientAllowance, "transfer amount exceeds allowance")
	ErrInsufficientClaimable = NewErrorWithMsg(http.StatusBadRequest, InsufficientClaimable, "insufficient claimable balance")
	ErrInsufficientRewarded  = NewErrorWithMsg(http.StatusBadRequest, InsufficientRewarded, "Liquidity: insufficient rewarded balance")
	ErrInsufficientStake     = NewErrorWithMsg(http.StatusBadRequest, InsufficientStake, "Govern: Not enough stake")
	ErrNoStake               = NewErrorWithMsg(http.StatusBadRequest, NoStake, "Govern: Must have stake")
	ErrInvalidVoteChoice     = NewErrorWithMsg(http.StatusBadRequest, BadRequest, "Govern: Invalid vote choice")

	ErrNotReady              = NewErrorWithMsg(http.StatusConflict, NotReady, "Permission: Not ready")
	ErrNotEnded              = NewErrorWithMsg(http.StatusConflict, NotEnded, "Govern: Not ended")
	ErrVotingEnded           = NewErrorWithMsg(http.StatusConflict, VotingEnded, "Govern: Ended")
	ErrExpired               = NewErrorWithMsg(http.StatusConflict, Expired, "Govern: Expired")
	ErrNotNominated          = NewErrorWithMsg(http.StatusConflict, NotNominated, "Govern: Not nominated")
	ErrAlreadyInitialized    = NewErrorWithMsg(http.StatusConflict, AlreadyInitialized, "Permission: Already initialized")
	ErrEpochSynced           = NewErrorWithMsg(http.StatusConflict, EpochSynced, "Govern: Epoch synced")
	ErrNoGovernBootstrapping = NewErrorWithMsg(http.StatusConflict, NoGovernBootstrapping, "No govern during bootstrapping")

	ErrNoQuorum              = NewErrorWithMsg(http.StatusConflict, NoQuorum, "Govern: Must have quorom")
	ErrNotApproved           = NewErrorWithMsg(http.StatusConflict, NotApproved, "Govern: Not approved")
	ErrMustHaveSuperMajority = NewErrorWithMsg(http.StatusConflict, MustHaveSuperMajority, "Govern: Must have super majority")
	ErrUnknownImplementation = NewErrorWithMsg(http.StatusNotFound, UnknownImplementation, "Govern: Unknown implementation")

	ErrPriceGated    = NewErrorWithMsg(http.StatusConflict, PriceGated, "Cannot bond when price >1")
	ErrOracleInvalid = NewErrorWithMsg(http.StatusConflict, OracleInvalid, "Oracle: price not valid")

	ErrNotDao    = NewErrorWithMsg(http.StatusForbidden, NotDao, "Not dao")
	ErrNotMinter = NewErrorWithMsg(http.StatusForbidden, NotMinter, "MinterRole: caller does not have the Minter role")
)

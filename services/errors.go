package services

import "errors"

// Stable error kinds surfaced to the HTTP layer. Handlers map them to status
// codes with errors.Is; anything else is a generic 500.
var (
	ErrSponsorNotFound       = errors.New("sponsor not found")
	ErrMemberNotFound        = errors.New("member not found")
	ErrRecipientNotFound     = errors.New("recipient not found")
	ErrPackageNotFound       = errors.New("package not found or disabled")
	ErrPriceUnavailable      = errors.New("cannot load BABY DAN price")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrWithdrawLimitExceeded = errors.New("24-hour withdrawal limit exceeded")
	ErrDuplicateWallet       = errors.New("this wallet address is already registered")
	ErrDuplicateTxnHash      = errors.New("this transaction hash is already used")
	ErrInvalidSide           = errors.New("side must be \"left\" or \"right\"")
	ErrSelfTransfer          = errors.New("cannot transfer to own wallet")

	// ErrCorruptTree means a tree walk exceeded the depth ceiling, i.e. the
	// parent chain contains a cycle or a detached subtree. Fatal: never treated
	// as a silent stop.
	ErrCorruptTree = errors.New("corrupt member tree detected")
)

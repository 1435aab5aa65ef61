package contract

import "errors"

var (
	ErrContractNotFound      = errors.New("contract not found")
	ErrContractInactive      = errors.New("contract is not active")
	ErrInvalidTransition     = errors.New("invalid contract transition")
	ErrTrialRenewalExhausted = errors.New("trial renewals exhausted")
)

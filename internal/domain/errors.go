package domain

import "errors"

var (
	ErrInvalidAmount 		= errors.New("amount must be a positive integer")
	ErrInvalidPayload 		= errors.New("malformed gateway payload")
	ErrInvalidStatus 		= errors.New("invalid status")
	ErrUnknownBank 			= errors.New("unknown bank")
	ErrCodeAllocationFailed = errors.New("reference code allocation failed")
	ErrDuplicateReference 	= errors.New("reference code already used")
	ErrDuplicateGatewayTxn 	= errors.New("gateway transaction already linked")
	ErrWalletNotFound 		= errors.New("wallet not found")
	ErrTransactionNotFound 	= errors.New("transaction not found")
	ErrOrderNotFound 		= errors.New("order not found")
	ErrAlreadySettled 		= errors.New("transaction already confirmed")
	ErrOrderStatusConflict 	= errors.New("order status does not allow this change")
	ErrInsufficientBalance 	= errors.New("insufficient balance")
	ErrReconcileInProgress 	= errors.New("reconciliation already running")
)

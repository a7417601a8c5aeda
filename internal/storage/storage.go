package storage

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEntryNotFound = errors.New("ledger entry not found")
)

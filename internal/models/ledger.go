package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidEntry = errors.New("invalid ledger entry")

type EntryKind string

const (
	EntryKindIncome  EntryKind = "income"
	EntryKindExpense EntryKind = "expense"
)

func (k EntryKind) Valid() bool {
	return k == EntryKindIncome || k == EntryKindExpense
}

func (k EntryKind) String() string {
	return string(k)
}

func (k *EntryKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if !EntryKind(s).Valid() {
		return fmt.Errorf("unknown entry kind %q", s)
	}

	*k = EntryKind(s)

	return nil
}

// LedgerEntry amounts are in minor currency units.
type LedgerEntry struct {
	ID         int64     `json:"id"`
	Kind       EntryKind `json:"kind"`
	Amount     int64     `json:"amount"`
	Category   string    `json:"category"`
	Note       string    `json:"note,omitempty"`
	OccurredOn time.Time `json:"occurred_on"`
	CreatedAt  time.Time `json:"created_at"`
}

func (e LedgerEntry) Validate() error {
	switch {
	case !e.Kind.Valid():
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntry, e.Kind)
	case e.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", ErrInvalidEntry)
	case strings.TrimSpace(e.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidEntry)
	case e.OccurredOn.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}

	return nil
}

// LedgerFilter bounds are inclusive dates; zero values disable a bound.
type LedgerFilter struct {
	Kind EntryKind
	From time.Time
	To   time.Time
}

type LedgerSummary struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

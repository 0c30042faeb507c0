package service

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type TransactionType int

const (
	TransactionTypeExpense TransactionType = iota
	TransactionTypeIncome
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeExpense:
		return "Expense"
	case TransactionTypeIncome:
		return "Income"
	default:
		return "Unknown"
	}
}

// ParseTransactionType accepts "Expense" or "Income" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return TransactionTypeExpense, nil
	case "income":
		return TransactionTypeIncome, nil
	default:
		return 0, apperrors.NewValidationError("type", "must be Expense or Income")
	}
}

func transactionTypeToStorage(t TransactionType) transaction.TransactionType {
	if t == TransactionTypeIncome {
		return transaction.TransactionTypeIncome
	}
	return transaction.TransactionTypeExpense
}

func transactionTypeFromStorage(t transaction.TransactionType) TransactionType {
	if t == transaction.TransactionTypeIncome {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	Type         TransactionType
	Description  string
	Date         time.Time
	CategoryID   *uuid.UUID
	CategoryName string
	BudgetGoalID *uuid.UUID
	CreatedAt    time.Time
}

// TransactionInput carries the caller's values for create and update.
// Type is required; a zero Date means today on create and "unchanged" on
// update.
type TransactionInput struct {
	Amount       decimal.Decimal
	Type         *TransactionType
	Description  string
	Date         time.Time
	CategoryID   *uuid.UUID
	BudgetGoalID *uuid.UUID
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:           row.ID,
		Amount:       row.Amount,
		Type:         transactionTypeFromStorage(row.Type),
		Description:  row.Description,
		Date:         row.Date,
		CategoryID:   uuidPtr(row.CategoryID),
		CategoryName: row.CategoryName,
		BudgetGoalID: uuidPtr(row.BudgetGoalID),
		CreatedAt:    row.CreatedAt,
	}
}

func transactionsFromStorage(rows []*transaction.Transaction) []Transaction {
	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted
}

func uuidPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// truncateDate drops the time of day, keeping the calendar date in t's
// location, and returns it as UTC midnight.
func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string `json:"id" doc:"Transaction UUID"`
	Amount       string `json:"amount" doc:"Decimal amount"`
	Type         string `json:"type" doc:"Expense or Income"`
	Description  string `json:"description" doc:"What the transaction was for"`
	Date         string `json:"date" doc:"Calendar date of the transaction"`
	CategoryID   string `json:"categoryID,omitempty" doc:"Category UUID"`
	CategoryName string `json:"categoryName,omitempty" doc:"Category name"`
	BudgetGoalID string `json:"budgetGoalID,omitempty" doc:"Budget goal UUID"`
	CreatedAt    string `json:"createdAt" doc:"RFC3339 creation time"`
}

// TransactionBody is the request body for creating or updating a transaction.
type TransactionBody struct {
	Amount       string `json:"amount" doc:"Decimal amount, greater than zero"`
	Type         string `json:"type" doc:"Expense or Income, in any case"`
	Description  string `json:"description" doc:"What the transaction was for"`
	Date         string `json:"date,omitempty" doc:"Calendar date (2006-01-02) or RFC3339 time. Defaults to today on create and to the stored date on update"`
	CategoryID   string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	BudgetGoalID string `json:"budgetGoalID,omitempty" format:"uuid" doc:"Budget goal UUID"`
}

// TransactionPath identifies a transaction in the URL.
type TransactionPath struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

func parseTransactionBody(body TransactionBody) (service.TransactionInput, error) {
	var input service.TransactionInput

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return input, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	txType, err := service.ParseTransactionType(body.Type)
	if err != nil {
		return input, apierror.From(err, "invalid type")
	}

	date, err := apierror.ParseDate("date", body.Date)
	if err != nil {
		return input, err
	}

	categoryID, err := optionalUUID("categoryID", body.CategoryID)
	if err != nil {
		return input, err
	}

	budgetGoalID, err := optionalUUID("budgetGoalID", body.BudgetGoalID)
	if err != nil {
		return input, err
	}

	return service.TransactionInput{
		Amount:       amount,
		Type:         &txType,
		Description:  body.Description,
		Date:         date,
		CategoryID:   categoryID,
		BudgetGoalID: budgetGoalID,
	}, nil
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	return id, nil
}

func optionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.FromString(value)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return &id, nil
}

func toResponse(tx service.Transaction) Transaction {
	resp := Transaction{
		ID:           tx.ID.String(),
		Amount:       tx.Amount.String(),
		Type:         tx.Type.String(),
		Description:  tx.Description,
		Date:         apierror.FormatDate(tx.Date),
		CategoryName: tx.CategoryName,
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID != nil {
		resp.CategoryID = tx.CategoryID.String()
	}
	if tx.BudgetGoalID != nil {
		resp.BudgetGoalID = tx.BudgetGoalID.String()
	}
	return resp
}

func toResponses(txs []service.Transaction) []Transaction {
	resp := make([]Transaction, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}
	return resp
}

package transaction

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bank-console/internal/bankapi"
	"github.com/carson-networks/bank-console/internal/handlers/v1/upstream"
	"github.com/carson-networks/bank-console/internal/logging"
	"github.com/carson-networks/bank-console/internal/view"
)

// ListTransactionsInput is the Huma input for listing an account's transactions.
type ListTransactionsInput struct {
	AccountNumber string `path:"accountNumber" maxLength:"20" doc:"Account number"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	AccountNumber string        `json:"accountNumber" doc:"Account the history belongs to"`
	Transactions  []Transaction `json:"transactions" doc:"Transactions, newest first"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	GetTransactions(ctx context.Context, accountNumber string) ([]bankapi.Transaction, error)
}

// ListTransactionsHandler handles GET /v1/accounts/{accountNumber}/transactions.
type ListTransactionsHandler struct {
	API      transactionLister
	Renderer *view.Renderer
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(api transactionLister, renderer *view.Renderer) *ListTransactionsHandler {
	return &ListTransactionsHandler{API: api, Renderer: renderer}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{accountNumber}/transactions",
		Summary:     "List transactions",
		Description: "Returns the transaction history of one account, formatted for display.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	accountNumber := strings.TrimSpace(input.AccountNumber)
	if accountNumber == "" {
		return nil, huma.NewError(http.StatusBadRequest, view.EnterAccountNumberText)
	}

	var stopTimer func()
	if logData != nil {
		logData.AddData("accountNumber", accountNumber)
		stopTimer = logData.AddTiming("getTransactionsMs")
	}
	transactions, err := h.API.GetTransactions(ctx, accountNumber)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, upstream.Error(err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	table := h.Renderer.Transactions(accountNumber, transactions, nil)
	resp := ListTransactionsResponseBody{
		AccountNumber: accountNumber,
		Transactions:  make([]Transaction, len(table.Rows)),
	}

	for i, row := range table.Rows {
		resp.Transactions[i] = Transaction{
			ID:            row.ID,
			Type:          row.Type,
			Amount:        row.Amount,
			BalanceBefore: row.BalanceBefore,
			BalanceAfter:  row.BalanceAfter,
			Description:   row.Description,
			Timestamp:     row.Timestamp,
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}

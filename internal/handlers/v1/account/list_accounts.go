package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bank-console/internal/bankapi"
	"github.com/carson-networks/bank-console/internal/handlers/v1/upstream"
	"github.com/carson-networks/bank-console/internal/logging"
	"github.com/carson-networks/bank-console/internal/view"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct{}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts []Account `json:"accounts" doc:"All accounts, empty when there are none"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// accountLister is the interface for listing accounts.
type accountLister interface {
	ListAccounts(ctx context.Context) ([]bankapi.Account, error)
}

// ListAccountsHandler handles GET /v1/accounts.
type ListAccountsHandler struct {
	API      accountLister
	Renderer *view.Renderer
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(api accountLister, renderer *view.Renderer) *ListAccountsHandler {
	return &ListAccountsHandler{API: api, Renderer: renderer}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns every account from the account service, formatted for display.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	accounts, err := h.API.ListAccounts(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, upstream.Error(err)
	}

	if logData != nil {
		logData.AddData("accountCount", len(accounts))
	}

	table := h.Renderer.Accounts(accounts, nil)
	resp := ListAccountsResponseBody{
		Accounts: make([]Account, len(table.Rows)),
	}

	for i, row := range table.Rows {
		resp.Accounts[i] = Account{
			ID:            row.ID,
			AccountNumber: row.AccountNumber,
			Name:          row.Name,
			MobilePhone:   row.MobilePhone,
			Balance:       row.Balance,
			CreatedOn:     row.CreatedOn,
		}
	}

	return &ListAccountsOutput{Body: resp}, nil
}

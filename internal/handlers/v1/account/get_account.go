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

// GetAccountInput is the Huma input for fetching one account.
type GetAccountInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Account id in the account service"`
}

// GetAccountOutput is the Huma output for fetching one account.
type GetAccountOutput struct {
	Body Account
}

type accountGetter interface {
	GetAccount(ctx context.Context, id int64) (*bankapi.Account, error)
}

// GetAccountHandler handles GET /v1/accounts/{id}.
type GetAccountHandler struct {
	API      accountGetter
	Renderer *view.Renderer
}

func NewGetAccountHandler(api accountGetter, renderer *view.Renderer) *GetAccountHandler {
	return &GetAccountHandler{API: api, Renderer: renderer}
}

// Register registers the get account endpoint with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{id}",
		Summary:     "Get an account",
		Description: "Returns one account by id, formatted for display.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("accountID", input.ID)
		defer logData.AddTiming("getAccountMs")()
	}

	acct, err := h.API.GetAccount(ctx, input.ID)
	if err != nil {
		return nil, upstream.Error(err)
	}

	row := h.Renderer.Accounts([]bankapi.Account{*acct}, nil).Rows[0]
	return &GetAccountOutput{Body: Account{
		ID:            row.ID,
		AccountNumber: row.AccountNumber,
		Name:          row.Name,
		MobilePhone:   row.MobilePhone,
		Balance:       row.Balance,
		CreatedOn:     row.CreatedOn,
	}}, nil
}

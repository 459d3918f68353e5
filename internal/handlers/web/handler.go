package web

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-console/internal/bankapi"
	"github.com/carson-networks/bank-console/internal/logging"
	"github.com/carson-networks/bank-console/internal/view"
)

// accountAPI is the subset of the account service client the console uses.
type accountAPI interface {
	BaseURL() string
	ListAccounts(ctx context.Context) ([]bankapi.Account, error)
	CreateAccount(ctx context.Context, create bankapi.AccountCreate) (*bankapi.Account, error)
	DeleteAccount(ctx context.Context, id int64) (*bankapi.DeleteResult, error)
	Deposit(ctx context.Context, movement bankapi.Movement) (*bankapi.MovementResult, error)
	Withdraw(ctx context.Context, movement bankapi.Movement) (*bankapi.MovementResult, error)
	Transfer(ctx context.Context, transfer bankapi.TransferRequest) (*bankapi.TransferResult, error)
	GetTransactions(ctx context.Context, accountNumber string) ([]bankapi.Transaction, error)
	VerifyBalance(ctx context.Context, id int64) (*bankapi.BalanceCheck, error)
}

// Handler serves the HTML console. Every action performs at most one
// mutation against the account service and then re-renders the page.
type Handler struct {
	API      accountAPI
	Renderer *view.Renderer
}

func NewHandler(api accountAPI, renderer *view.Renderer) *Handler {
	return &Handler{API: api, Renderer: renderer}
}

// Register mounts the console routes on mux.
func (h *Handler) Register(mux *http.ServeMux, logger *logrus.Logger) {
	mux.HandleFunc("GET /{$}", logging.LoggingWrapper("Index", logger, h.Index))
	mux.HandleFunc("POST /refresh", logging.LoggingWrapper("Refresh", logger, h.Refresh))
	mux.HandleFunc("POST /accounts/create", logging.LoggingWrapper("CreateAccount", logger, h.CreateAccount))
	mux.HandleFunc("POST /accounts/deposit", logging.LoggingWrapper("Deposit", logger, h.Deposit))
	mux.HandleFunc("POST /accounts/withdraw", logging.LoggingWrapper("Withdraw", logger, h.Withdraw))
	mux.HandleFunc("POST /accounts/transfer", logging.LoggingWrapper("Transfer", logger, h.Transfer))
	mux.HandleFunc("GET /accounts/{id}/delete", logging.LoggingWrapper("ConfirmDelete", logger, h.ConfirmDelete))
	mux.HandleFunc("POST /accounts/{id}/delete", logging.LoggingWrapper("DeleteAccount", logger, h.DeleteAccount))
	mux.HandleFunc("POST /accounts/{id}/verify", logging.LoggingWrapper("VerifyBalance", logger, h.VerifyBalance))
	mux.HandleFunc("GET /transactions", logging.LoggingWrapper("Transactions", logger, h.Transactions))
}

// newPage returns a page with a freshly fetched accounts table.
func (h *Handler) newPage(ctx context.Context, logData *logging.LogData) view.Page {
	stopTimer := logData.AddTiming("listAccountsMs")
	accounts, err := h.API.ListAccounts(ctx)
	stopTimer()
	if err != nil {
		logData.AddData("listAccountsError", err.Error())
	} else {
		logData.AddData("accountCount", len(accounts))
	}

	return view.Page{
		ServiceURL:   h.API.BaseURL(),
		Accounts:     h.Renderer.Accounts(accounts, err),
		Transactions: view.TransactionsPrompt(),
	}
}

func (h *Handler) render(w http.ResponseWriter, page view.Page) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	return h.Renderer.RenderPage(w, page)
}

func (h *Handler) Index(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	return h.render(w, h.newPage(req.Context(), logData))
}

func (h *Handler) Refresh(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	http.Redirect(w, req, "/", http.StatusSeeOther)
	return nil
}

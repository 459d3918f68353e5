package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bank-console/internal/bankapi"
	"github.com/carson-networks/bank-console/internal/view"
)

type mockAccountAPI struct {
	mock.Mock
}

func (m *mockAccountAPI) BaseURL() string {
	return "http://bank.test"
}

func (m *mockAccountAPI) ListAccounts(ctx context.Context) ([]bankapi.Account, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]bankapi.Account)
	return accounts, args.Error(1)
}

func (m *mockAccountAPI) CreateAccount(ctx context.Context, create bankapi.AccountCreate) (*bankapi.Account, error) {
	args := m.Called(ctx, create)
	account, _ := args.Get(0).(*bankapi.Account)
	return account, args.Error(1)
}

func (m *mockAccountAPI) DeleteAccount(ctx context.Context, id int64) (*bankapi.DeleteResult, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*bankapi.DeleteResult)
	return result, args.Error(1)
}

func (m *mockAccountAPI) Deposit(ctx context.Context, movement bankapi.Movement) (*bankapi.MovementResult, error) {
	args := m.Called(ctx, movement)
	result, _ := args.Get(0).(*bankapi.MovementResult)
	return result, args.Error(1)
}

func (m *mockAccountAPI) Withdraw(ctx context.Context, movement bankapi.Movement) (*bankapi.MovementResult, error) {
	args := m.Called(ctx, movement)
	result, _ := args.Get(0).(*bankapi.MovementResult)
	return result, args.Error(1)
}

func (m *mockAccountAPI) Transfer(ctx context.Context, transfer bankapi.TransferRequest) (*bankapi.TransferResult, error) {
	args := m.Called(ctx, transfer)
	result, _ := args.Get(0).(*bankapi.TransferResult)
	return result, args.Error(1)
}

func (m *mockAccountAPI) GetTransactions(ctx context.Context, accountNumber string) ([]bankapi.Transaction, error) {
	args := m.Called(ctx, accountNumber)
	transactions, _ := args.Get(0).([]bankapi.Transaction)
	return transactions, args.Error(1)
}

func (m *mockAccountAPI) VerifyBalance(ctx context.Context, id int64) (*bankapi.BalanceCheck, error) {
	args := m.Called(ctx, id)
	check, _ := args.Get(0).(*bankapi.BalanceCheck)
	return check, args.Error(1)
}

func newTestMux(t *testing.T, api *mockAccountAPI) *http.ServeMux {
	t.Helper()
	renderer, err := view.NewRenderer(view.NewFormatter("en-US", time.UTC))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mux := http.NewServeMux()
	NewHandler(api, renderer).Register(mux, logger)
	return mux
}

func serve(mux *http.ServeMux, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func oneAccount(balance string) []bankapi.Account {
	return []bankapi.Account{{
		ID:               1,
		AccountNumber:    "ACC-1",
		Name:             "Ada",
		Balance:          decimal.RequireFromString(balance),
		AccountCreatedOn: bankapi.Timestamp{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
}

// -- Index --

func TestIndex_EmptyAccounts(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No accounts yet")
	assert.Contains(t, w.Body.String(), "Enter account number")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	api.AssertExpectations(t)
}

func TestIndex_ListError(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("ListAccounts", mock.Anything).Return(nil, &bankapi.APIError{Status: 500, Message: "List failed: 500"}).Once()

	w := serve(newTestMux(t, api), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="err">List failed: 500`)
}

func TestRefresh_Redirects(t *testing.T) {
	api := new(mockAccountAPI)

	w := serve(newTestMux(t, api), http.MethodPost, "/refresh", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	api.AssertNotCalled(t, "ListAccounts", mock.Anything)
}

// -- Create --

func TestCreateAccount_SuccessRefreshesAccounts(t *testing.T) {
	api := new(mockAccountAPI)
	created := false
	api.On("CreateAccount", mock.Anything, bankapi.AccountCreate{
		AccountNumber: "ACC-1",
		Name:          "Ada",
		MobilePhone:   "555",
		Balance:       decimal.RequireFromString("100.5"),
	}).Run(func(mock.Arguments) { created = true }).Return(&bankapi.Account{ID: 1}, nil).Once()
	api.On("ListAccounts", mock.Anything).Run(func(mock.Arguments) {
		assert.True(t, created, "accounts must be listed after the create call")
	}).Return(oneAccount("100.5"), nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/create", url.Values{
		"account_number": {" ACC-1 "},
		"name":           {"Ada"},
		"mobile_phone":   {"555"},
		"balance":        {"100.5"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<span class="status ok" role="status">Created</span>`)
	assert.Contains(t, body, "100.50")
	assert.NotContains(t, body, `value="ACC-1"`)
	api.AssertExpectations(t)
}

func TestCreateAccount_BlankBalanceIsZero(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("CreateAccount", mock.Anything, mock.MatchedBy(func(c bankapi.AccountCreate) bool {
		return c.Balance.IsZero()
	})).Return(&bankapi.Account{ID: 2}, nil).Once()
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/create", url.Values{
		"account_number": {"ACC-2"},
		"name":           {"Bob"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	api.AssertExpectations(t)
}

func TestCreateAccount_DetailShownInStatus(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, &bankapi.APIError{Status: 400, Message: "Account number already exists"}).Once()
	api.On("ListAccounts", mock.Anything).Return(oneAccount("1"), nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/create", url.Values{
		"account_number": {"ACC-1"},
		"name":           {"Ada"},
		"balance":        {"1"},
	})

	body := w.Body.String()
	assert.Contains(t, body, `<span class="status err" role="status">Account number already exists</span>`)
	assert.Contains(t, body, `value="ACC-1"`)
	api.AssertExpectations(t)
}

func TestCreateAccount_InvalidBalanceSkipsService(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/create", url.Values{
		"account_number": {"ACC-1"},
		"name":           {"Ada"},
		"balance":        {"lots"},
	})

	assert.Contains(t, w.Body.String(), "Invalid balance")
	api.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

// -- Deposit / Withdraw / Transfer --

func TestDeposit_SuccessRefreshesAccounts(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("Deposit", mock.Anything, bankapi.Movement{AccountNumber: "ACC-1", Amount: decimal.RequireFromString("50")}).
		Return(&bankapi.MovementResult{Transaction: bankapi.Transaction{ID: 9}}, nil).Once()
	api.On("ListAccounts", mock.Anything).Return(oneAccount("150"), nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/deposit", url.Values{
		"account_number": {"ACC-1"},
		"amount":         {"50"},
	})

	body := w.Body.String()
	assert.Contains(t, body, "OK ✔")
	assert.Contains(t, body, "150.00")
	api.AssertExpectations(t)
}

func TestDeposit_MissingAmount(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/deposit", url.Values{
		"account_number": {"ACC-1"},
	})

	assert.Contains(t, w.Body.String(), "Enter an amount")
	api.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything)
}

func TestWithdraw_DetailShownInStatus(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("Withdraw", mock.Anything, mock.Anything).
		Return(nil, &bankapi.APIError{Status: 400, Message: "Insufficient balance"}).Once()
	api.On("ListAccounts", mock.Anything).Return(oneAccount("10"), nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/withdraw", url.Values{
		"account_number": {"ACC-1"},
		"amount":         {"500"},
	})

	body := w.Body.String()
	withdrawSection := body[strings.Index(body, `id="withdraw-form"`):]
	assert.Contains(t, withdrawSection, `<span class="status err" role="status">Insufficient balance</span>`)
	api.AssertExpectations(t)
}

func TestWithdraw_SuccessRefreshesAccounts(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("Withdraw", mock.Anything, bankapi.Movement{AccountNumber: "ACC-1", Amount: decimal.RequireFromString("5.25")}).
		Return(&bankapi.MovementResult{}, nil).Once()
	api.On("ListAccounts", mock.Anything).Return(oneAccount("4.75"), nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/withdraw", url.Values{
		"account_number": {"ACC-1"},
		"amount":         {"5.25"},
	})

	assert.Contains(t, w.Body.String(), "4.75")
	api.AssertExpectations(t)
}

func TestTransfer_SuccessRefreshesAccounts(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("Transfer", mock.Anything, bankapi.TransferRequest{
		FromAccountNumber: "A",
		ToAccountNumber:   "B",
		Amount:            decimal.RequireFromString("30"),
	}).Return(&bankapi.TransferResult{}, nil).Once()
	api.On("ListAccounts", mock.Anything).Return(oneAccount("70"), nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/transfer", url.Values{
		"from_account_number": {"A"},
		"to_account_number":   {"B"},
		"amount":              {"30"},
	})

	body := w.Body.String()
	transferSection := body[strings.Index(body, `id="transfer-form"`):]
	assert.Contains(t, transferSection, "OK ✔")
	api.AssertExpectations(t)
}

func TestTransfer_InvalidAmount(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/transfer", url.Values{
		"from_account_number": {"A"},
		"to_account_number":   {"B"},
		"amount":              {"1,000"},
	})

	assert.Contains(t, w.Body.String(), "Invalid amount")
	api.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything)
}

// -- Delete --

func TestConfirmDelete_NoNetworkCall(t *testing.T) {
	api := new(mockAccountAPI)

	w := serve(newTestMux(t, api), http.MethodGet, "/accounts/3/delete", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Delete account 3?")
	api.AssertExpectations(t)
	assert.Empty(t, api.Calls)
}

func TestDeleteAccount_DeclinedIssuesNoCall(t *testing.T) {
	api := new(mockAccountAPI)

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/3/delete", url.Values{"confirm": {"no"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, api.Calls)
}

func TestDeleteAccount_ConfirmedRefreshesAccounts(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("DeleteAccount", mock.Anything, int64(3)).
		Return(&bankapi.DeleteResult{Message: "Account 3 deleted successfully"}, nil).Once()
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/3/delete", url.Values{"confirm": {"yes"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Account 3 deleted successfully")
	assert.Contains(t, w.Body.String(), "No accounts yet")
	api.AssertExpectations(t)
}

func TestDeleteAccount_Failure(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("DeleteAccount", mock.Anything, int64(3)).
		Return(nil, &bankapi.APIError{Status: 404, Message: "Account not found"}).Once()
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/3/delete", url.Values{"confirm": {"yes"}})

	assert.Contains(t, w.Body.String(), "Delete failed: Account not found")
	api.AssertExpectations(t)
}

func TestDeleteAccount_BadID(t *testing.T) {
	api := new(mockAccountAPI)

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/abc/delete", url.Values{"confirm": {"yes"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, api.Calls)
}

// -- Verify --

func TestVerifyBalance_Fixed(t *testing.T) {
	oldBalance := decimal.RequireFromString("10")
	correctBalance := decimal.RequireFromString("12.5")

	api := new(mockAccountAPI)
	api.On("VerifyBalance", mock.Anything, int64(1)).Return(&bankapi.BalanceCheck{
		Status:         "fixed",
		AccountID:      1,
		Message:        "Balance has been corrected based on transaction history",
		OldBalance:     &oldBalance,
		CorrectBalance: &correctBalance,
	}, nil).Once()
	api.On("ListAccounts", mock.Anything).Return(oneAccount("12.5"), nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/1/verify", url.Values{})

	assert.Contains(t, w.Body.String(), "Account 1: Balance has been corrected based on transaction history, 10.00 → 12.50")
	api.AssertExpectations(t)
}

func TestVerifyBalance_Failure(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("VerifyBalance", mock.Anything, int64(1)).Return(nil, errors.New("Verify failed")).Once()
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodPost, "/accounts/1/verify", url.Values{})

	assert.Contains(t, w.Body.String(), "Verify failed: Verify failed")
}

// -- Transactions --

func TestTransactions_BlankNumberShowsPrompt(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodGet, "/transactions?account_number=++", nil)

	assert.Contains(t, w.Body.String(), "Enter account number")
	api.AssertNotCalled(t, "GetTransactions", mock.Anything, mock.Anything)
}

func TestTransactions_RendersOneRowPerTransaction(t *testing.T) {
	description := "Deposit"
	api := new(mockAccountAPI)
	api.On("ListAccounts", mock.Anything).Return(oneAccount("150"), nil).Once()
	api.On("GetTransactions", mock.Anything, "ACC-1").Return([]bankapi.Transaction{
		{ID: 1, TransactionType: "DEPOSIT", Amount: decimal.RequireFromString("50"), BalanceBefore: decimal.RequireFromString("100"), BalanceAfter: decimal.RequireFromString("150"), Description: &description},
		{ID: 2, TransactionType: "WITHDRAW", Amount: decimal.RequireFromString("0.5"), BalanceBefore: decimal.RequireFromString("150"), BalanceAfter: decimal.RequireFromString("149.5")},
		{ID: 3, TransactionType: "TRANSFER_IN", Amount: decimal.RequireFromString("1"), BalanceBefore: decimal.RequireFromString("149.5"), BalanceAfter: decimal.RequireFromString("150.5")},
	}, nil).Once()

	w := serve(newTestMux(t, api), http.MethodGet, "/transactions?account_number=ACC-1", nil)

	body := w.Body.String()
	txnBody := body[strings.Index(body, `id="txn-rows"`):]
	assert.Equal(t, 3, strings.Count(txnBody, "<tr>"))
	assert.Contains(t, txnBody, "50.00")
	assert.Contains(t, txnBody, "0.50")
	assert.Contains(t, txnBody, "149.50")
	assert.Contains(t, body, `id="txn_account_id" name="account_number" placeholder="Account number" value="ACC-1"`)
	api.AssertExpectations(t)
}

func TestTransactions_Error(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("ListAccounts", mock.Anything).Return([]bankapi.Account{}, nil).Once()
	api.On("GetTransactions", mock.Anything, "NOPE").Return(nil, &bankapi.APIError{Status: 404, Message: "Account not found"}).Once()

	w := serve(newTestMux(t, api), http.MethodGet, "/transactions?account_number=NOPE", nil)

	assert.Contains(t, w.Body.String(), `class="err">Account not found`)
}

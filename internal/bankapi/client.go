package bankapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-console/internal/logging"
)

// Client talks to the account-management REST service.
type Client struct {
	baseURL string
	rest    *resty.Client
	logger  *logrus.Logger
}

// NewClient creates a Client for baseURL. A nil httpClient uses a client
// with the given timeout.
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logging.SetupLogging()
	}
	baseURL = strings.TrimRight(baseURL, "/")

	var rest *resty.Client
	if httpClient != nil {
		rest = resty.NewWithClient(httpClient)
	} else {
		rest = resty.New().SetTimeout(timeout)
	}
	rest.SetBaseURL(baseURL).
		SetLogger(logger).
		SetHeader("Accept", "application/json").
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			logger.WithFields(logrus.Fields{
				"method":     resp.Request.Method,
				"path":       resp.Request.URL,
				"status":     resp.StatusCode(),
				"durationMs": resp.Time().Milliseconds(),
				"requestID":  resp.Request.Header.Get(logging.RequestIDHeader),
			}).Debug("bankapi.Client.request")
			return nil
		})

	return &Client{
		baseURL: baseURL,
		rest:    rest,
		logger:  logger,
	}
}

// BaseURL returns the service root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	err := c.do(ctx, http.MethodGet, "/accounts", nil, nil, &accounts, func(status int) string {
		return fmt.Sprintf("List failed: %d", status)
	})
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []Account{}
	}
	return accounts, nil
}

func (c *Client) GetAccount(ctx context.Context, id int64) (*Account, error) {
	var account Account
	err := c.do(ctx, http.MethodGet, "/accounts/{id}", idParam(id), nil, &account, generic("Get account failed"))
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) CreateAccount(ctx context.Context, create AccountCreate) (*Account, error) {
	body := accountCreateBody{
		AccountNumber: create.AccountNumber,
		Name:          create.Name,
		MobilePhone:   create.MobilePhone,
		Balance:       number(create.Balance),
	}
	var account Account
	if err := c.do(ctx, http.MethodPost, "/register", nil, body, &account, generic("Create failed")); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) (*DeleteResult, error) {
	var result DeleteResult
	err := c.do(ctx, http.MethodDelete, "/accounts/{id}", idParam(id), nil, &result, generic("Delete failed"))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Deposit(ctx context.Context, movement Movement) (*MovementResult, error) {
	return c.move(ctx, "/accounts/deposit", movement, "Deposit failed")
}

func (c *Client) Withdraw(ctx context.Context, movement Movement) (*MovementResult, error) {
	return c.move(ctx, "/accounts/withdraw", movement, "Withdraw failed")
}

func (c *Client) move(ctx context.Context, path string, movement Movement, failure string) (*MovementResult, error) {
	body := movementBody{
		AccountNumber: movement.AccountNumber,
		Amount:        number(movement.Amount),
	}
	var result MovementResult
	if err := c.do(ctx, http.MethodPost, path, nil, body, &result, generic(failure)); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Transfer(ctx context.Context, transfer TransferRequest) (*TransferResult, error) {
	body := transferBody{
		FromAccountNumber: transfer.FromAccountNumber,
		ToAccountNumber:   transfer.ToAccountNumber,
		Amount:            number(transfer.Amount),
	}
	var result TransferResult
	if err := c.do(ctx, http.MethodPost, "/accounts/transfer", nil, body, &result, generic("Transfer failed")); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetTransactions(ctx context.Context, accountNumber string) ([]Transaction, error) {
	var transactions []Transaction
	params := map[string]string{"accountNumber": accountNumber}
	err := c.do(ctx, http.MethodGet, "/accounts/{accountNumber}/transactions", params, nil, &transactions, generic("Get txns failed"))
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []Transaction{}
	}
	return transactions, nil
}

func (c *Client) VerifyBalance(ctx context.Context, id int64) (*BalanceCheck, error) {
	var check BalanceCheck
	err := c.do(ctx, http.MethodPost, "/accounts/{id}/verify-balance", idParam(id), nil, &check, generic("Verify failed"))
	if err != nil {
		return nil, err
	}
	return &check, nil
}

func generic(message string) func(int) string {
	return func(int) string { return message }
}

func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}

// do sends one request. Path parameters are escaped into path; a non-2xx
// answer becomes an *APIError carrying the service's detail, or failure(status)
// when the body has none.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	params map[string]string,
	body interface{},
	out interface{},
	failure func(status int) string,
) error {
	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = logging.NewRequestID()
	}
	req := c.rest.R().
		SetContext(ctx).
		SetHeader(logging.RequestIDHeader, requestID).
		SetPathParams(params)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddToExistingTiming("upstreamMs")()
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"method":    method,
			"path":      path,
			"requestID": requestID,
		}).Warn("bankapi.Client.request failed")
		return fmt.Errorf("account service unreachable: %w", err)
	}

	if !resp.IsSuccess() {
		message := detailMessage(resp.Body())
		if message == "" {
			message = failure(resp.StatusCode())
		}
		return &APIError{Status: resp.StatusCode(), Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: decode response: %w", failure(resp.StatusCode()), err)
	}
	return nil
}

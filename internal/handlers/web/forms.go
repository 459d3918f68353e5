package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-console/internal/bankapi"
	"github.com/carson-networks/bank-console/internal/logging"
	"github.com/carson-networks/bank-console/internal/view"
)

const (
	createdText   = "Created"
	processedText = "OK ✔"
)

var (
	errAmountRequired = errors.New("Enter an amount")
	errInvalidAmount  = errors.New("Invalid amount")
	errInvalidBalance = errors.New("Invalid balance")
)

// formValues reads and trims the named fields of a submitted form.
func formValues(req *http.Request, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = strings.TrimSpace(req.PostFormValue(field))
	}
	return values
}

func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, errAmountRequired
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, errInvalidAmount
	}
	return amount, nil
}

// parseBalance treats a blank opening balance as zero.
func parseBalance(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	balance, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, errInvalidBalance
	}
	return balance, nil
}

// submit runs one form action and renders the page. A successful action
// clears the form; a failed one keeps the submitted values. Either way the
// accounts table is fetched after the action completes.
func (h *Handler) submit(
	w http.ResponseWriter,
	req *http.Request,
	logData *logging.LogData,
	form func(page *view.Page) *view.Form,
	values map[string]string,
	timing string,
	action func() (string, error),
) error {
	status := view.Form{Values: values}

	stopTimer := logData.AddTiming(timing)
	okText, err := action()
	stopTimer()
	if err != nil {
		logData.AddData("actionError", err.Error())
		if code := bankapi.StatusCode(err); code != 0 {
			logData.AddData("upstreamStatus", code)
		}
		status.Status = view.Failed(err.Error())
	} else {
		status.Status = view.OK(okText)
		status.Values = nil
	}

	page := h.newPage(req.Context(), logData)
	*form(&page) = status
	return h.render(w, page)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	values := formValues(req, "account_number", "name", "mobile_phone", "balance")

	return h.submit(w, req, logData, func(p *view.Page) *view.Form { return &p.Create }, values, "createAccountMs", func() (string, error) {
		balance, err := parseBalance(values["balance"])
		if err != nil {
			return "", err
		}
		account, err := h.API.CreateAccount(req.Context(), bankapi.AccountCreate{
			AccountNumber: values["account_number"],
			Name:          values["name"],
			MobilePhone:   values["mobile_phone"],
			Balance:       balance,
		})
		if err != nil {
			return "", err
		}
		logData.AddData("accountID", account.ID)
		return createdText, nil
	})
}

func (h *Handler) Deposit(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	values := formValues(req, "account_number", "amount")

	return h.submit(w, req, logData, func(p *view.Page) *view.Form { return &p.Deposit }, values, "depositMs", func() (string, error) {
		amount, err := parseAmount(values["amount"])
		if err != nil {
			return "", err
		}
		result, err := h.API.Deposit(req.Context(), bankapi.Movement{AccountNumber: values["account_number"], Amount: amount})
		if err != nil {
			return "", err
		}
		logData.AddData("transactionID", result.Transaction.ID)
		return processedText, nil
	})
}

func (h *Handler) Withdraw(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	values := formValues(req, "account_number", "amount")

	return h.submit(w, req, logData, func(p *view.Page) *view.Form { return &p.Withdraw }, values, "withdrawMs", func() (string, error) {
		amount, err := parseAmount(values["amount"])
		if err != nil {
			return "", err
		}
		result, err := h.API.Withdraw(req.Context(), bankapi.Movement{AccountNumber: values["account_number"], Amount: amount})
		if err != nil {
			return "", err
		}
		logData.AddData("transactionID", result.Transaction.ID)
		return processedText, nil
	})
}

func (h *Handler) Transfer(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	values := formValues(req, "from_account_number", "to_account_number", "amount")

	return h.submit(w, req, logData, func(p *view.Page) *view.Form { return &p.Transfer }, values, "transferMs", func() (string, error) {
		amount, err := parseAmount(values["amount"])
		if err != nil {
			return "", err
		}
		result, err := h.API.Transfer(req.Context(), bankapi.TransferRequest{
			FromAccountNumber: values["from_account_number"],
			ToAccountNumber:   values["to_account_number"],
			Amount:            amount,
		})
		if err != nil {
			return "", err
		}
		logData.AddData("transactionID", result.FromTransaction.ID)
		return processedText, nil
	})
}

package bankapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account mirrors the account service's account resource.
type Account struct {
	ID               int64           `json:"id"`
	AccountNumber    string          `json:"account_number"`
	Name             string          `json:"name"`
	MobilePhone      *string         `json:"mobile_phone"`
	Balance          decimal.Decimal `json:"balance"`
	AccountCreatedOn Timestamp       `json:"account_created_on"`
}

// Transaction mirrors one entry of an account's history.
type Transaction struct {
	ID              int64           `json:"id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceBefore   decimal.Decimal `json:"balance_before"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Description     *string         `json:"description"`
	Timestamp       Timestamp       `json:"timestamp"`
}

// AccountCreate is the body of POST /register.
type AccountCreate struct {
	AccountNumber string
	Name          string
	MobilePhone   string
	Balance       decimal.Decimal
}

// Movement is the body of a deposit or withdrawal.
type Movement struct {
	AccountNumber string
	Amount        decimal.Decimal
}

// TransferRequest moves Amount between two accounts.
type TransferRequest struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
}

// MovementResult is returned by deposit and withdraw.
type MovementResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// TransferResult is returned by transfer.
type TransferResult struct {
	FromAccount     Account     `json:"from_account"`
	ToAccount       Account     `json:"to_account"`
	FromTransaction Transaction `json:"from_transaction"`
	ToTransaction   Transaction `json:"to_transaction"`
}

// DeleteResult is returned by account deletion.
type DeleteResult struct {
	Message string `json:"message"`
}

// BalanceCheck is returned by verify-balance. Status is "ok" or "fixed".
type BalanceCheck struct {
	Status         string           `json:"status"`
	AccountID      int64            `json:"account_id"`
	Message        string           `json:"message"`
	CurrentBalance *decimal.Decimal `json:"current_balance,omitempty"`
	OldBalance     *decimal.Decimal `json:"old_balance,omitempty"`
	CorrectBalance *decimal.Decimal `json:"correct_balance,omitempty"`
}

// wire bodies; amounts travel as JSON numbers.
type accountCreateBody struct {
	AccountNumber string      `json:"account_number"`
	Name          string      `json:"name"`
	MobilePhone   string      `json:"mobile_phone"`
	Balance       json.Number `json:"balance"`
}

type movementBody struct {
	AccountNumber string      `json:"account_number"`
	Amount        json.Number `json:"amount"`
}

type transferBody struct {
	FromAccountNumber string      `json:"from_account_number"`
	ToAccountNumber   string      `json:"to_account_number"`
	Amount            json.Number `json:"amount"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// Timestamp accepts RFC3339 as well as the zone-less ISO-8601 datetimes the
// account service emits. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func ParseTimestamp(value string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return Timestamp{Time: t}, nil
	}
	var lastErr error
	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return Timestamp{Time: t}, nil
		}
		lastErr = err
	}
	return Timestamp{}, lastErr
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

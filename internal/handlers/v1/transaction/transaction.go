package transaction

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID            int64  `json:"id" doc:"Transaction id"`
	Type          string `json:"type" doc:"DEPOSIT, WITHDRAW, TRANSFER_IN or TRANSFER_OUT"`
	Amount        string `json:"amount" doc:"Amount with two decimals"`
	BalanceBefore string `json:"balanceBefore" doc:"Balance before the transaction"`
	BalanceAfter  string `json:"balanceAfter" doc:"Balance after the transaction"`
	Description   string `json:"description,omitempty" doc:"Free-form description"`
	Timestamp     string `json:"timestamp" doc:"Time in the display locale and time zone"`
}

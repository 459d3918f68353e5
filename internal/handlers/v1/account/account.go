package account

// Account is the API response model for an account, with display-formatted
// money and timestamps.
type Account struct {
	ID            int64  `json:"id" doc:"Account id in the account service"`
	AccountNumber string `json:"accountNumber" doc:"Account number"`
	Name          string `json:"name" doc:"Holder name"`
	MobilePhone   string `json:"mobilePhone,omitempty" doc:"Holder mobile phone"`
	Balance       string `json:"balance" doc:"Balance with two decimals and locale grouping"`
	CreatedOn     string `json:"createdOn" doc:"Creation time in the display locale and time zone"`
}

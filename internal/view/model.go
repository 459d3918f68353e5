package view

// TableState selects which body a table renders.
type TableState int

const (
	TableLoading TableState = iota
	TableEmpty
	TableError
	TablePopulated
	TablePrompt
)

const (
	LoadingText            = "Loading"
	NoAccountsText         = "No accounts yet"
	NoTransactionsText     = "No transactions"
	EnterAccountNumberText = "Enter account number"
)

// TableColumns is the column count of both tables.
const TableColumns = 7

type AccountRow struct {
	ID            int64
	AccountNumber string
	Name          string
	MobilePhone   string
	Balance       string
	CreatedOn     string
	CreatedAge    string
}

type AccountsTable struct {
	State   TableState
	Message string
	Rows    []AccountRow
}

type TransactionRow struct {
	ID            int64
	Type          string
	Amount        string
	BalanceBefore string
	BalanceAfter  string
	Description   string
	Timestamp     string
	Age           string
}

type TransactionsTable struct {
	State         TableState
	Message       string
	AccountNumber string
	Rows          []TransactionRow
}

// StatusClass is the CSS class of a form's status indicator.
type StatusClass string

const (
	StatusIdle  StatusClass = ""
	StatusOK    StatusClass = "ok"
	StatusError StatusClass = "err"
)

type Status struct {
	Class StatusClass
	Text  string
}

func OK(text string) Status {
	return Status{Class: StatusOK, Text: text}
}

func Failed(text string) Status {
	if text == "" {
		text = "Error"
	}
	return Status{Class: StatusError, Text: text}
}

// Form is one input form on the page: its status and the values to
// show in its inputs.
type Form struct {
	Status Status
	Values map[string]string
}

// Value returns the submitted value of field, or "".
func (f Form) Value(field string) string {
	if f.Values == nil {
		return ""
	}
	return f.Values[field]
}

// Page is everything the console page renders.
type Page struct {
	ServiceURL   string
	Flash        Status
	Accounts     AccountsTable
	Transactions TransactionsTable
	Create       Form
	Deposit      Form
	Withdraw     Form
	Transfer     Form
}

// Confirm is the delete confirmation dialog.
type Confirm struct {
	AccountID int64
	Question  string
	Action    string
}

func (t AccountsTable) Populated() bool { return t.State == TablePopulated }
func (t AccountsTable) Failed() bool { return t.State == TableError }

func (t TransactionsTable) Populated() bool { return t.State == TablePopulated }
func (t TransactionsTable) Failed() bool { return t.State == TableError }

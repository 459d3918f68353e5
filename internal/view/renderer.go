package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/carson-networks/bank-console/internal/bankapi"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns account service DTOs into table views and writes them out.
type Renderer struct {
	format    *Formatter
	templates *template.Template
}

func NewRenderer(format *Formatter) (*Renderer, error) {
	templates, err := template.New("console").
		Funcs(template.FuncMap{"columns": func() int { return TableColumns }}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Renderer{format: format, templates: templates}, nil
}

func (r *Renderer) Format() *Formatter {
	return r.format
}

// AccountsLoading is the table shown while accounts are being fetched.
func AccountsLoading() AccountsTable {
	return AccountsTable{State: TableLoading, Message: LoadingText}
}

// Accounts builds the accounts table from a listAccounts result.
func (r *Renderer) Accounts(accounts []bankapi.Account, err error) AccountsTable {
	if err != nil {
		return AccountsTable{State: TableError, Message: err.Error()}
	}
	if len(accounts) == 0 {
		return AccountsTable{State: TableEmpty, Message: NoAccountsText}
	}

	rows := make([]AccountRow, len(accounts))
	for i, account := range accounts {
		phone := ""
		if account.MobilePhone != nil {
			phone = *account.MobilePhone
		}
		rows[i] = AccountRow{
			ID:            account.ID,
			AccountNumber: account.AccountNumber,
			Name:          account.Name,
			MobilePhone:   phone,
			Balance:       r.format.Money(account.Balance),
			CreatedOn:     r.format.Timestamp(account.AccountCreatedOn.Time),
			CreatedAge:    r.format.Age(account.AccountCreatedOn.Time),
		}
	}
	return AccountsTable{State: TablePopulated, Rows: rows}
}

// TransactionsPrompt is the table shown before an account number is given.
func TransactionsPrompt() TransactionsTable {
	return TransactionsTable{State: TablePrompt, Message: EnterAccountNumberText}
}

func TransactionsLoading(accountNumber string) TransactionsTable {
	return TransactionsTable{State: TableLoading, Message: LoadingText + "…", AccountNumber: accountNumber}
}

// Transactions builds the history table for accountNumber.
func (r *Renderer) Transactions(accountNumber string, transactions []bankapi.Transaction, err error) TransactionsTable {
	if err != nil {
		return TransactionsTable{State: TableError, Message: err.Error(), AccountNumber: accountNumber}
	}
	if len(transactions) == 0 {
		return TransactionsTable{State: TableEmpty, Message: NoTransactionsText, AccountNumber: accountNumber}
	}

	rows := make([]TransactionRow, len(transactions))
	for i, tx := range transactions {
		description := ""
		if tx.Description != nil {
			description = *tx.Description
		}
		rows[i] = TransactionRow{
			ID:            tx.ID,
			Type:          tx.TransactionType,
			Amount:        r.format.Money(tx.Amount),
			BalanceBefore: r.format.Money(tx.BalanceBefore),
			BalanceAfter:  r.format.Money(tx.BalanceAfter),
			Description:   description,
			Timestamp:     r.format.Timestamp(tx.Timestamp.Time),
			Age:           r.format.Age(tx.Timestamp.Time),
		}
	}
	return TransactionsTable{State: TablePopulated, AccountNumber: accountNumber, Rows: rows}
}

func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	return r.templates.ExecuteTemplate(w, "page.html", page)
}

func (r *Renderer) RenderConfirm(w io.Writer, confirm Confirm) error {
	return r.templates.ExecuteTemplate(w, "confirm.html", confirm)
}

// WriteAccountsText writes the accounts table as aligned plain text.
func WriteAccountsText(w io.Writer, table AccountsTable) error {
	if table.State != TablePopulated {
		_, err := fmt.Fprintln(w, table.Message)
		return err
	}

	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = []string{strconv.FormatInt(row.ID, 10), row.AccountNumber, row.Name, row.MobilePhone, row.Balance, row.CreatedOn}
	}
	return writeTextTable(w, []string{"ID", "NUMBER", "NAME", "MOBILE", "BALANCE", "CREATED"}, rows)
}

// WriteTransactionsText writes the transaction table as aligned plain text.
func WriteTransactionsText(w io.Writer, table TransactionsTable) error {
	if table.State != TablePopulated {
		_, err := fmt.Fprintln(w, table.Message)
		return err
	}

	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = []string{strconv.FormatInt(row.ID, 10), row.Type, row.Amount, row.BalanceBefore, row.BalanceAfter, row.Description, row.Timestamp}
	}
	return writeTextTable(w, []string{"ID", "TYPE", "AMOUNT", "BEFORE", "AFTER", "DESCRIPTION", "TIMESTAMP"}, rows)
}

// writeTextTable renders borderless, left-aligned columns separated by two
// spaces. Render cannot report write errors, so it draws into a buffer first.
func writeTextTable(w io.Writer, header []string, rows [][]string) error {
	var buf bytes.Buffer
	tw := tablewriter.NewWriter(&buf)
	tw.SetHeader(header)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetHeaderLine(false)
	tw.SetBorder(false)
	tw.SetTablePadding("  ")
	tw.SetNoWhiteSpace(true)
	tw.AppendBulk(rows)
	tw.Render()

	_, err := buf.WriteTo(w)
	return err
}

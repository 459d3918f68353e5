package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carson-networks/bank-console/internal/view"
)

func NewTransactionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transactions ACCOUNT_NUMBER",
		Short: "Print the transaction history of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return listTransactions(cmd, a, args[0])
		},
	}
}

func listTransactions(cmd *cobra.Command, a *app, accountNumber string) error {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		_ = view.WriteTransactionsText(cmd.OutOrStdout(), view.TransactionsPrompt())
		return errors.New("account number is required")
	}

	_ = view.WriteTransactionsText(cmd.ErrOrStderr(), view.TransactionsLoading(accountNumber))

	transactions, err := a.client.GetTransactions(cmd.Context(), accountNumber)
	table := a.renderer.Transactions(accountNumber, transactions, err)
	if writeErr := view.WriteTransactionsText(cmd.OutOrStdout(), table); writeErr != nil {
		return writeErr
	}
	return err
}

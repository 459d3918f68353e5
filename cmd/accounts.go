package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carson-networks/bank-console/internal/bankapi"

	"github.com/carson-networks/bank-console/internal/view"
)

func NewAccountsCommand() *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect accounts",
	}

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every account as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return listAccounts(cmd, a)
		},
	})

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Print one account by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 1 {
				return fmt.Errorf("invalid account id %q", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			return getAccount(cmd, a, id)
		},
	})

	return accountsCmd
}

func listAccounts(cmd *cobra.Command, a *app) error {
	_ = view.WriteAccountsText(cmd.ErrOrStderr(), view.AccountsLoading())

	accounts, err := a.client.ListAccounts(cmd.Context())
	table := a.renderer.Accounts(accounts, err)
	if writeErr := view.WriteAccountsText(cmd.OutOrStdout(), table); writeErr != nil {
		return writeErr
	}
	return err
}

func getAccount(cmd *cobra.Command, a *app, id int64) error {
	acct, err := a.client.GetAccount(cmd.Context(), id)
	var accounts []bankapi.Account
	if acct != nil {
		accounts = []bankapi.Account{*acct}
	}
	table := a.renderer.Accounts(accounts, err)
	if writeErr := view.WriteAccountsText(cmd.OutOrStdout(), table); writeErr != nil {
		return writeErr
	}
	return err
}

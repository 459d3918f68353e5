package main

import (
	"github.com/carson-networks/bank-console/cmd"
)

func main() {
	cmd.RegisterCommands(
		cmd.NewServeCommand(),
		cmd.NewAccountsCommand(),
		cmd.NewTransactionsCommand(),
	)
	cmd.Execute()
}

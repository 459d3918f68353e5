package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/carson-networks/bank-console/internal/logging"
	"github.com/carson-networks/bank-console/internal/view"
)

func accountID(req *http.Request) (int64, error) {
	id, err := strconv.ParseInt(req.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account id %q", req.PathValue("id"))
	}
	return id, nil
}

// ConfirmDelete shows the confirmation dialog. It never calls the account service.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	id, err := accountID(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	logData.AddData("accountID", id)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return h.Renderer.RenderConfirm(w, view.Confirm{
		AccountID: id,
		Question:  fmt.Sprintf("Delete account %d?", id),
		Action:    fmt.Sprintf("/accounts/%d/delete", id),
	})
}

// DeleteAccount deletes only when the dialog was accepted; a declined
// dialog goes back to the page without touching the account service.
func (h *Handler) DeleteAccount(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	id, err := accountID(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	logData.AddData("accountID", id)

	if req.PostFormValue("confirm") != "yes" {
		logData.AddData("confirmed", false)
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return nil
	}

	stopTimer := logData.AddTiming("deleteAccountMs")
	result, err := h.API.DeleteAccount(req.Context(), id)
	stopTimer()

	var flash view.Status
	if err != nil {
		logData.AddData("actionError", err.Error())
		flash = view.Failed("Delete failed: " + err.Error())
	} else {
		message := result.Message
		if message == "" {
			message = fmt.Sprintf("Account %d deleted", id)
		}
		flash = view.OK(message)
	}

	page := h.newPage(req.Context(), logData)
	page.Flash = flash
	return h.render(w, page)
}

// VerifyBalance asks the account service to reconcile an account's balance
// with its latest transaction and reports the outcome.
func (h *Handler) VerifyBalance(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	id, err := accountID(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}
	logData.AddData("accountID", id)

	stopTimer := logData.AddTiming("verifyBalanceMs")
	check, err := h.API.VerifyBalance(req.Context(), id)
	stopTimer()

	var flash view.Status
	if err != nil {
		logData.AddData("actionError", err.Error())
		flash = view.Failed("Verify failed: " + err.Error())
	} else {
		format := h.Renderer.Format()
		parts := []string{fmt.Sprintf("Account %d: %s", check.AccountID, check.Message)}
		if check.OldBalance != nil && check.CorrectBalance != nil {
			parts = append(parts, fmt.Sprintf("%s → %s", format.Money(*check.OldBalance), format.Money(*check.CorrectBalance)))
		} else if check.CurrentBalance != nil {
			parts = append(parts, "balance "+format.Money(*check.CurrentBalance))
		}
		flash = view.OK(strings.Join(parts, ", "))
	}

	page := h.newPage(req.Context(), logData)
	page.Flash = flash
	return h.render(w, page)
}

// Transactions renders the page with the history of ?account_number=.
// A blank account number shows the prompt without calling the service.
func (h *Handler) Transactions(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	accountNumber := strings.TrimSpace(req.URL.Query().Get("account_number"))
	page := h.newPage(req.Context(), logData)

	if accountNumber == "" {
		page.Transactions = view.TransactionsPrompt()
		return h.render(w, page)
	}
	logData.AddData("accountNumber", accountNumber)

	stopTimer := logData.AddTiming("getTransactionsMs")
	transactions, err := h.API.GetTransactions(req.Context(), accountNumber)
	stopTimer()
	if err != nil {
		logData.AddData("actionError", err.Error())
	} else {
		logData.AddData("transactionCount", len(transactions))
	}

	page.Transactions = h.Renderer.Transactions(accountNumber, transactions, err)
	return h.render(w, page)
}

package status

import (
	"errors"
	"net/http"

	"github.com/carson-networks/bank-console/internal/logging"
)

type Handler struct {
	ServiceURL string
}

func NewHandler(serviceURL string) Handler {
	return Handler{ServiceURL: serviceURL}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	logData.AddData("serviceURL", h.ServiceURL)
	w.WriteHeader(http.StatusOK)
	return nil
}

package upstream

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bank-console/internal/bankapi"
)

// Error converts an account service failure into a huma error. Client
// errors reported by the service keep their status; anything else is a 502.
func Error(err error) huma.StatusError {
	status := bankapi.StatusCode(err)
	if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
		status = http.StatusBadGateway
	}
	return huma.NewError(status, err.Error())
}

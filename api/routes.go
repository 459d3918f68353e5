package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-console/internal/bankapi"
	"github.com/carson-networks/bank-console/internal/handlers/v1/account"
	"github.com/carson-networks/bank-console/internal/handlers/v1/status"
	"github.com/carson-networks/bank-console/internal/handlers/v1/transaction"
	"github.com/carson-networks/bank-console/internal/handlers/web"
	"github.com/carson-networks/bank-console/internal/logging"
	"github.com/carson-networks/bank-console/internal/view"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Client   *bankapi.Client
	Renderer *view.Renderer
}

// Routes builds the console's handler: HTML pages, /status and the
// JSON API under /v1.
func (r *Rest) Routes() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Client.BaseURL())
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	web.NewHandler(r.Client, r.Renderer).Register(mux, r.Logger)

	humaAPI := humago.New(mux, huma.DefaultConfig("Bank Console API", "1.0.0"))
	humaAPI.UseMiddleware(logging.HumaMiddleware(r.Logger))
	account.NewListAccountsHandler(r.Client, r.Renderer).Register(humaAPI)
	account.NewGetAccountHandler(r.Client, r.Renderer).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Client, r.Renderer).Register(humaAPI)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
	return nil
}

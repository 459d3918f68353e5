package logging

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		log.Infof("Handler.%v.Start", loggingName)

		logData := NewLogData(log)
		requestID := req.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = NewRequestID()
		}
		logData.AddData("requestID", requestID)
		w.Header().Set(RequestIDHeader, requestID)

		ctx := WithRequestID(req.Context(), requestID)
		ctx = WithLogData(ctx, logData)
		req = req.WithContext(ctx)

		endTimer := logData.AddTiming("duration")
		err := handler(w, req, logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// HumaMiddleware gives huma operations the same per-request LogData and
// request id as handlers registered through LoggingWrapper.
func HumaMiddleware(log *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		loggingName := ctx.Operation().OperationID
		log.Infof("Handler.%v.Start", loggingName)

		logData := NewLogData(log)
		requestID := ctx.Header(RequestIDHeader)
		if requestID == "" {
			requestID = NewRequestID()
		}
		logData.AddData("requestID", requestID)
		ctx.SetHeader(RequestIDHeader, requestID)

		reqCtx := WithRequestID(ctx.Context(), requestID)
		reqCtx = WithLogData(reqCtx, logData)

		endTimer := logData.AddTiming("duration")
		next(huma.WithContext(ctx, reqCtx))
		endTimer()

		logData.AddData("status", ctx.Status())
		if ctx.Status() >= http.StatusInternalServerError {
			logData.Log().Errorf("Handler.%v.Error", loggingName)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

package factory

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

func NewModuleLogger(module string) logrus.FieldLogger {
	return logrus.WithField("module", module)
}

// NewJobLogger tags batch job output so a worker's runs can be grouped.
func NewJobLogger(job string) logrus.FieldLogger {
	return logrus.WithFields(logrus.Fields{
		"module": "billing-jobs",
		"job":    job,
	})
}

func LoggerWithContext(logger logrus.FieldLogger, ctx echo.Context) logrus.FieldLogger {
	requestID := ctx.Request().Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = ctx.Response().Header().Get(requestIDHeader)
	}
	return logger.WithField("request_id", requestID)
}

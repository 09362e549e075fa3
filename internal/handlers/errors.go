package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/apperrors"
	"serverless-crud-api/internal/response"
	"serverless-crud-api/internal/services"
	"serverless-crud-api/pkg/lambda"
)

// Request-level messages
const (
	MsgBodyRequired  = services.MsgBodyRequired
	MsgInvalidJSON   = "Invalid JSON in request body"
	MsgRouteNotFound = "Route not found"
)

// respondError maps a service error onto a response by its kind. Anything
// that is not a validation or not-found error is logged and hidden behind a
// generic 500.
func respondError(logger *logrus.Logger, operation string, err error, notFoundMessage string) *lambda.Response {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return response.BadRequest(apperrors.MessageOf(err))
	case apperrors.KindNotFound:
		return response.NotFound(notFoundMessage)
	default:
		logger.WithError(err).WithFields(logrus.Fields{
			"operation": operation,
			"kind":      apperrors.KindOf(err).String(),
		}).Error("Request failed")
		return response.Error(response.InternalErrorMessage, http.StatusInternalServerError)
	}
}

// decodeBody unmarshals a JSON request body into v. The returned response is
// non-nil when the body is missing or malformed.
func decodeBody(req *lambda.Request, v any) *lambda.Response {
	if len(strings.TrimSpace(string(req.Body))) == 0 {
		return response.BadRequest(MsgBodyRequired)
	}
	if err := json.Unmarshal(req.Body, v); err != nil {
		return response.BadRequest(MsgInvalidJSON)
	}
	return nil
}

package rest

import (
	"net/http"
	"strconv"

	"github.com/emicklei/go-restful"
	"github.com/pkg/errors"
	"github.com/promoscan/promoscan/models"
	"github.com/promoscan/promoscan/youtube"
)

const (
	defaultMonthsBack = 12
	maxMonthsBack     = 36

	// rough cost of one full collection pass, checked before expensive work
	preflightQuotaCost = 200
)

type errorResponse struct {
	Error       string              `json:"error"`
	Code        string              `json:"code,omitempty"`
	QuotaStatus *models.QuotaStatus `json:"quotaStatus,omitempty"`
}

func writeError(resp *restful.Response, status int, message string) {
	resp.WriteHeaderAndJson(status, errorResponse{Error: message}, restful.MIME_JSON)
}

func writeQuotaExceeded(resp *restful.Response, message string, status models.QuotaStatus) {
	resp.WriteHeaderAndJson(http.StatusTooManyRequests, errorResponse{
		Error:       message,
		Code:        "QUOTA_EXCEEDED",
		QuotaStatus: &status,
	}, restful.MIME_JSON)
}

// writeServiceError maps the core error taxonomy onto HTTP statuses. Every
// failure was classified once at its origin; nothing is retried here.
func (a *API) writeServiceError(resp *restful.Response, err error) {
	var quotaErr *youtube.QuotaExceededError
	var unresolvableErr *youtube.UnresolvableError
	var upstreamErr *youtube.UpstreamError

	switch {
	case errors.As(err, &quotaErr):
		writeQuotaExceeded(resp, quotaErr.Error(), quotaErr.Status)
	case errors.As(err, &unresolvableErr):
		writeError(resp, http.StatusNotFound, unresolvableErr.Error())
	case errors.As(err, &upstreamErr):
		a.log.WithError(err).Warn("upstream request failed")
		writeError(resp, http.StatusBadGateway, upstreamErr.Error())
	default:
		a.log.WithError(err).Error("request failed")
		writeError(resp, http.StatusInternalServerError, "Unexpected server error.")
	}
}

func intQueryParameter(req *restful.Request, name string, fallback, ceiling int) int {
	value, err := strconv.Atoi(req.QueryParameter(name))
	if err != nil || value < 1 {
		return fallback
	}
	if value > ceiling {
		return ceiling
	}
	return value
}

func boolQueryParameter(req *restful.Request, name string, fallback bool) bool {
	switch req.QueryParameter(name) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return fallback
}

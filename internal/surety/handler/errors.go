package handler

import (
	"errors"
	"net/http"

	"surety/internal/surety/models"
	"surety/pkg/platform/httputil"
)

var reasonStatus = map[models.Reason]int{
	models.ReasonUnauthorized:               http.StatusForbidden,
	models.ReasonOperationalStatusDisabled:  http.StatusServiceUnavailable,
	models.ReasonSponsorNotFunded:           http.StatusForbidden,
	models.ReasonCandidateAlreadyRegistered: http.StatusConflict,
	models.ReasonTargetNotRegistered:        http.StatusConflict,
	models.ReasonInsufficientFunding:        http.StatusUnprocessableEntity,
}

// writeError renders rejections with their reason and everything else through
// the shared domain error mapping.
func writeError(w http.ResponseWriter, err error) {
	var rejection *models.RejectionError
	if errors.As(err, &rejection) {
		status, ok := reasonStatus[rejection.Reason]
		if !ok {
			status = http.StatusUnprocessableEntity
		}
		httputil.WriteJSON(w, status, httputil.ErrorResponse{
			Error:            string(rejection.Reason),
			ErrorDescription: rejection.Message(),
		})
		return
	}
	httputil.WriteError(w, err)
}

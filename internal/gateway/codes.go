package gateway

import (
	"fmt"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

// The gateway keys article statuses by name but events (and majors) by
// numeric code. Both are mapped to the canonical string statuses here, at
// the adapter boundary, and nowhere else.

const (
	eventCodePending   = 0
	eventCodePublished = 1
	eventCodeOngoing   = 2
	eventCodeCompleted = 3
	eventCodeCancelled = 4
	eventCodeRejected  = 5
)

func eventStatusFromCode(code int) (models.ContentStatus, error) {
	switch code {
	case eventCodePending:
		return models.StatusPending, nil
	case eventCodePublished:
		return models.StatusPublished, nil
	case eventCodeOngoing:
		return models.StatusOngoing, nil
	case eventCodeCompleted:
		return models.StatusCompleted, nil
	case eventCodeCancelled:
		return models.StatusCancelled, nil
	case eventCodeRejected:
		return models.StatusRejected, nil
	default:
		return "", appErrors.Clone(appErrors.ErrGatewayMalformed, fmt.Sprintf("unknown event status code %d", code))
	}
}

func articleStatusFromWire(raw string) (models.ContentStatus, error) {
	status := models.ContentStatus(raw)
	if !models.ValidStatusFilter(models.KindArticle, status) {
		return "", appErrors.Clone(appErrors.ErrGatewayMalformed, fmt.Sprintf("unknown article status %q", raw))
	}
	return status, nil
}

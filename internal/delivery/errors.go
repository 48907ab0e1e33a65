package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/receipt_uploader/internal/domain"
)

const serviceName = "receipt_uploader"

var ErrBadEvent = errors.New("malformed order event")

func statusFor(err error) int {
	var uploadErr *domain.UploadError
	switch {
	case errors.Is(err, ErrBadEvent), errors.Is(err, domain.ErrInvalidOrder):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBucketNotConfigured):
		return http.StatusInternalServerError
	case errors.As(err, &uploadErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

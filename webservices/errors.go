package webservices

import (
	"net/http"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/mapstyle/palette"
)

// statusCodeForBuildError maps a palette build failure to a HTTP status code
func statusCodeForBuildError(err errorsx.Error) int {
	if errorsx.Cause(err) == palette.ErrInvalidSpec {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

package httpclient

import (
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/storefront-go/storefront/pkg/errors"
)

// ErrorFromResponse reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError for the named upstream API.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ErrorFromResponse(resp *http.Response, apiName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", apiName, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(apiName+" resource", resp.Request.URL.Path)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(fmt.Sprintf("%s rejected the request: %s", apiName, string(bodyBytes)))
	case resp.StatusCode >= 500:
		return apperrors.Unavailable(fmt.Sprintf("%s returned status %d", apiName, resp.StatusCode))
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: fmt.Sprintf("%s returned status %d: %s", apiName, resp.StatusCode, string(bodyBytes)),
			Status:  resp.StatusCode,
		}
	}
}

package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/eventlens/eventlens/pkg/drive"
)

func handle(err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	NewHandler().Handle(err, c)
	return rr
}

func TestHandle_CustomError(t *testing.T) {
	t.Parallel()
	rr := handle(NotFound("Event"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"not_found"`)
	assert.Contains(t, rr.Body.String(), "Event not found.")
}

func TestHandle_WrappedCustomError(t *testing.T) {
	t.Parallel()
	rr := handle(errors.WithStack(InvalidAdminKey()))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"invalid_admin_key"`)
}

func TestHandle_ProviderErrorRendersUpstream(t *testing.T) {
	t.Parallel()
	rr := handle(errors.WithStack(&drive.Error{StatusCode: 403, Status: "PERMISSION_DENIED", Message: "rate limit"}))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"upstream_error"`)
	// The provider's own message never reaches the client.
	assert.NotContains(t, rr.Body.String(), "rate limit")
}

func TestHandle_GenericError(t *testing.T) {
	t.Parallel()
	rr := handle(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"internal_server_error"`)
	assert.NotContains(t, rr.Body.String(), "boom")
}

func TestHandle_EchoError(t *testing.T) {
	t.Parallel()
	rr := handle(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"method_not_allowed"`)
}

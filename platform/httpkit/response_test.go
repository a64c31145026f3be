package httpkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lexcrm/platform/apperr"

	"github.com/gin-gonic/gin"
)

func handleErrorResponse(t *testing.T, err error) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handled := HandleError(c, err)
	return rec, handled
}

func TestHandleErrorNil(t *testing.T) {
	_, handled := handleErrorResponse(t, nil)
	if handled {
		t.Error("nil error must not be handled")
	}
}

func TestHandleErrorMapsKinds(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", apperr.NotFound("lead not found"), http.StatusNotFound, "lead not found"},
		{"validation", apperr.Validation("unknown status: Bogus"), http.StatusBadRequest, "unknown status: Bogus"},
		{"conflict", apperr.Conflict("attorney email already registered"), http.StatusConflict, "attorney email already registered"},
		{"internal", apperr.Internal("storage operation failed"), http.StatusInternalServerError, "storage operation failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, handled := handleErrorResponse(t, tc.err)
			if !handled {
				t.Fatal("error was not handled")
			}
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body.Error != tc.wantBody {
				t.Errorf("error message = %q, want %q", body.Error, tc.wantBody)
			}
		})
	}
}

func TestHandleErrorUnwrapsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("assign attorney: %w", apperr.NotFound("lead not found"))

	rec, _ := handleErrorResponse(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleErrorHidesUntypedErrors(t *testing.T) {
	driverErr := fmt.Errorf("list leads: %w", errors.New("connection refused"))

	rec, _ := handleErrorResponse(t, driverErr)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("driver error text leaked into the response: %s", rec.Body.String())
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("error message = %q, want %q", body.Error, "internal server error")
	}
}

func TestHandleErrorKeepsDetails(t *testing.T) {
	err := apperr.Validation("validation error").WithDetails("Phone is required")

	rec, _ := handleErrorResponse(t, err)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Phone is required") {
		t.Errorf("details missing from response: %s", rec.Body.String())
	}
}

// Package resttest provides util methods to write tests against echo
// handlers, driving requests through net/http/httptest recorders.
package resttest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// JSONRequest builds a request with the body passed (may be empty) and
// the JSON content type and accept headers set.
func JSONRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	return req
}

// Do serves the request through the echo instance and returns the
// recorded response.
func Do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// AssertStatus checks the recorded response has the status passed,
// otherwise fails the test with the response body printed out. If
// success it returns the bytes of the body, that can be later
// deserialized into a struct with json.Unmarshal.
//
//	rec := resttest.Do(e, resttest.JSONRequest(http.MethodPost, "/sales",
//	    `{"customer_id": 1123, "prod_id": 9982, "qty": 1}`))
//	body := resttest.AssertStatus(t, rec, http.StatusOK)
//
//	var sale SalePayload
//	if err := json.Unmarshal(body, &sale); err != nil {
//	    t.Fatal(err)
//	}
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, expectedStatus int) []byte {
	t.Helper()
	body := rec.Body.Bytes()
	if rec.Code != expectedStatus {
		t.Fatalf("expected status %d, got %d. Response Body: %s",
			expectedStatus, rec.Code, body)
	}
	return body
}

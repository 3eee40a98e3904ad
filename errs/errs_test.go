package errs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want int
	}{
		{"static validation", StaticValidation("User already exists."), http.StatusBadRequest},
		{"validation", Validation("insufficient_funds", "not enough funds"), http.StatusBadRequest},
		{"validation without code", Validation("", "invalid input"), http.StatusBadRequest},
		{"not found", NotFound("order", "id", "123"), http.StatusNotFound},
		{"db", DB(errors.New("connection refused")), http.StatusInternalServerError},
		{"unexpected", Unexpected(errors.New("boom")), http.StatusInternalServerError},
		{"unknown kind", &Error{Kind: Kind(99)}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.StatusCode(); got != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, got)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("order", "id", "123")
	want := `order with id equals to "123" not found or was removed`
	if got := err.Error(); got != want {
		t.Fatalf("expected message %q, got %q", want, got)
	}
	payload, ok := err.Payload().(*ValidationErrorPayload)
	if !ok {
		t.Fatalf("expected *ValidationErrorPayload, got %T", err.Payload())
	}
	if payload.Code != "not_found" {
		t.Fatalf("expected code %q, got %q", "not_found", payload.Code)
	}
	if payload.Error != want {
		t.Fatalf("expected error %q, got %q", want, payload.Error)
	}
}

func TestValidationPayload(t *testing.T) {
	payload, ok := Validation("insufficient_funds", "not enough funds").Payload().(*ValidationErrorPayload)
	if !ok {
		t.Fatalf("expected *ValidationErrorPayload")
	}
	if payload.Code != "insufficient_funds" || payload.Error != "not enough funds" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	// An empty code must be omitted from the JSON body.
	body, err := json.Marshal(Validation("", "invalid input").Payload())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(body), "code") {
		t.Fatalf("expected code omitted, got %s", body)
	}
}

func TestStaticValidationPayload(t *testing.T) {
	payload, ok := StaticValidation("User already exists.").Payload().(*InternalErrorPayload)
	if !ok {
		t.Fatalf("expected *InternalErrorPayload")
	}
	if payload.Error != "User already exists." {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestInternalPayloadsNeverLeakCause(t *testing.T) {
	cause := errors.New("pq: password authentication failed for user postgres")
	for _, e := range []*Error{DB(cause), Unexpected(cause)} {
		body, err := json.Marshal(e.Payload())
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(body), "postgres") {
			t.Fatalf("driver error text leaked into body: %s", body)
		}
		if !strings.Contains(string(body), http.StatusText(http.StatusInternalServerError)) {
			t.Fatalf("expected generic reason phrase, got %s", body)
		}
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	if !errors.Is(DB(cause), cause) {
		t.Fatal("expected DB error to wrap its cause")
	}
	if !errors.Is(Unexpected(cause), cause) {
		t.Fatal("expected Unexpected error to wrap its cause")
	}
	var appErr *Error
	if !errors.As(DB(cause), &appErr) || appErr.Kind != KindDB {
		t.Fatal("expected errors.As to find *Error with KindDB")
	}
}

package resttest

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mrsarm/echo-contrib-rest/errs"
	"github.com/mrsarm/echo-contrib-rest/page"
	"github.com/mrsarm/echo-contrib-rest/query"
)

type user struct {
	Name string `json:"name"`
}

// newTestApp wires a small API the way a consumer of the library would.
func newTestApp() *echo.Echo {
	logger := zerolog.New(io.Discard)
	e := echo.New()
	e.HTTPErrorHandler = errs.HTTPErrorHandler(&logger)
	e.GET("/users", func(c echo.Context) error {
		q, err := query.BindQuerySearch(c)
		if err != nil {
			return err
		}
		users := []user{{Name: "john"}, {Name: "marian"}}
		if q.Q != "" && q.Q != "john" {
			return c.JSON(http.StatusOK, page.Empty[user]())
		}
		return c.JSON(http.StatusOK, page.WithData(users, page.Total(2), q.Offset))
	})
	e.GET("/users/:id", func(c echo.Context) error {
		return errs.NotFound("user", "id", c.Param("id"))
	})
	return e
}

func TestAssertStatusReturnsBody(t *testing.T) {
	e := newTestApp()
	rec := Do(e, JSONRequest(http.MethodGet, "/users?offset=0&page_size=10", ""))
	body := AssertStatus(t, rec, http.StatusOK)

	var p page.Page[user]
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatal(err)
	}
	if p.PageSize != 2 || p.Total == nil || *p.Total != 2 {
		t.Fatalf("unexpected page: %+v", p)
	}
	if p.Data[0].Name != "john" {
		t.Fatalf("unexpected data: %+v", p.Data)
	}
}

func TestAssertStatusOnErrorResponses(t *testing.T) {
	e := newTestApp()

	rec := Do(e, JSONRequest(http.MethodGet, "/users/123", ""))
	body := AssertStatus(t, rec, http.StatusNotFound)

	var payload errs.ValidationErrorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Code != "not_found" {
		t.Fatalf("expected code not_found, got %q", payload.Code)
	}

	rec = Do(e, JSONRequest(http.MethodGet, "/users?offset=-1", ""))
	AssertStatus(t, rec, http.StatusBadRequest)
}

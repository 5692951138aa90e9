package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newErrorTestRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/t", handler)
	return r
}

func doRequest(t *testing.T, router *gin.Engine) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w, body
}

func TestErrorMiddlewareMapsSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "Not found"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"wrapped internal", Wrap(ErrInternalServer, errors.New("mongo: connection reset")), http.StatusInternalServerError, "Internal Server Error"},
		{"email exists", Wrap(ErrEmailExists, errors.New("dup key")), http.StatusConflict, "Email already exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newErrorTestRouter(func(c *gin.Context) {
				c.Error(tc.err)
			})
			w, body := doRequest(t, router)

			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, w.Code)
			}
			if body["error"] != tc.wantMsg {
				t.Errorf("expected error %q, got %q", tc.wantMsg, body["error"])
			}
		})
	}
}

func TestErrorMiddlewareMasksUnknownErrors(t *testing.T) {
	// A raw store error must never reach the client.
	router := newErrorTestRouter(func(c *gin.Context) {
		c.Error(errors.New("mongo: no reachable servers"))
	})
	w, body := doRequest(t, router)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body["error"] != "Internal Server Error" {
		t.Errorf("leaked error detail: %q", body["error"])
	}
}

func TestErrorMiddlewareLeavesWrittenResponses(t *testing.T) {
	router := newErrorTestRouter(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"error": "already handled"})
		c.Error(ErrNotFound)
	})
	w, body := doRequest(t, router)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["error"] != "already handled" {
		t.Errorf("middleware overwrote a written response: %q", body["error"])
	}
}

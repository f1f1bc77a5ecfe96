package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postExchange(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/v1/auth/google/exchange", ExchangeGoogleCode)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google/exchange", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestExchangeGoogleCodeRequiresCode(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"body vide", ""},
		{"JSON invalide", "{pas du json"},
		{"code absent", `{"redirect_uri": "http://localhost/cb"}`},
		{"code vide", `{"code": ""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postExchange(t, tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "'code' est obligatoire")
		})
	}
}

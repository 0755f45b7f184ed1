package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		allowed       []string
		origin        string
		wantStatus    int
		wantAllowFrom string
	}{
		{name: "any origin by default", allowed: nil, origin: "https://app.example.com", wantStatus: http.StatusNoContent, wantAllowFrom: "*"},
		{name: "listed origin", allowed: []string{"https://app.example.com"}, origin: "https://app.example.com", wantStatus: http.StatusNoContent, wantAllowFrom: "https://app.example.com"},
		{name: "unlisted origin", allowed: []string{"https://app.example.com"}, origin: "https://evil.example.com", wantStatus: http.StatusForbidden, wantAllowFrom: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.allowed))
			r.POST("/functions/v1/supplier-alerts", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodOptions, "/functions/v1/supplier-alerts", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowFrom, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

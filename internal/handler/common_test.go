package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`

	adminCaller     = &authz.Principal{AccountID: 1, Username: "root", Role: model.RoleAdmin}
	organizerCaller = &authz.Principal{AccountID: 3, Username: "olga", Role: model.RoleOrganizer}
	customerCaller  = &authz.Principal{AccountID: 7, Username: "carol", Role: model.RoleAttendee}
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// newTestRouter runs every request as p; nil means anonymous.
func newTestRouter(p *authz.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if p != nil {
			c.Set(principalKey, p)
		}
		c.Next()
	})
	return router
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp["error"]
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireTaskID(t *testing.T) {
	r := gin.New()
	r.GET("/tasks/:id", RequireTaskID(), func(c *gin.Context) {
		id, ok := GetTaskID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	cases := map[string]int{
		"/tasks/12":                   http.StatusOK,
		"/tasks/0":                    http.StatusNotFound,
		"/tasks/-1":                   http.StatusNotFound,
		"/tasks/abc":                  http.StatusNotFound,
		"/tasks/1.5":                  http.StatusNotFound,
		"/tasks/99999999999999999999": http.StatusNotFound,
	}
	for path, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
		if want == http.StatusNotFound {
			assert.JSONEq(t, `{"error":"Task not found"}`, w.Body.String(), path)
		}
	}
}

func TestGetTaskID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetTaskID(c)
	assert.False(t, ok)
}

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:     http.StatusBadRequest,
		KindConflict:       http.StatusBadRequest,
		KindAuthentication: http.StatusUnauthorized,
		KindUnauthorized:   http.StatusUnauthorized,
		KindForbidden:      http.StatusForbidden,
		KindNotFound:       http.StatusNotFound,
		KindPersistence:    http.StatusBadRequest,
		KindUnknown:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestKindOf_ThroughWrapping(t *testing.T) {
	base := errors.New("duplicate key")
	err := fmt.Errorf("register: %w", E(KindConflict, base))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, KindUnknown, KindOf(base))
	assert.Nil(t, E(KindNotFound, nil))
}

func TestRespond_WritesTitleAndMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, "Login failed", E(KindAuthentication, errors.New("invalid email or password")))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Login failed", body.Error)
	assert.Equal(t, "invalid email or password", body.Message)
	assert.Len(t, c.Errors, 1)
}

func TestValidationFailed_ListsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationFailed(c, []FieldError{{Field: "email", Message: "Invalid email format", Value: "a@b"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"error":"Validation failed","errors":[{"field":"email","message":"Invalid email format","value":"a@b"}]}`,
		w.Body.String())
}

func TestMessageOf_PrefersClientMessage(t *testing.T) {
	base := errors.New("user with this email already exists")

	tagged := M(KindConflict, base, "User with this email already exists")
	assert.Equal(t, "User with this email already exists", MessageOf(tagged))
	assert.Equal(t, "user with this email already exists", tagged.Error())
	assert.ErrorIs(t, tagged, base)

	assert.Equal(t, "plain", MessageOf(E(KindPersistence, errors.New("plain"))))
	assert.Equal(t, "bare", MessageOf(errors.New("bare")))
	assert.Nil(t, M(KindConflict, nil, "ignored"))
}

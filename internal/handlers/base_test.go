package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsroom/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    *services.Error
		status int
		msg    string
	}{
		{&services.Error{Kind: services.KindNotFound, Resource: services.ResourcePost, Parent: true}, http.StatusNotFound, "post not found"},
		{&services.Error{Kind: services.KindEmptyCollection, Resource: services.ResourceComment}, http.StatusNotFound, "no comments found"},
		{&services.Error{Kind: services.KindBeyondRange, Resource: services.ResourceLike}, http.StatusNotFound, "page out of range"},
		{&services.Error{Kind: services.KindInvalidInput, Resource: services.ResourcePost, Field: "title"}, http.StatusBadRequest, "invalid title"},
		{&services.Error{Kind: services.KindNoChanges, Resource: services.ResourceComment}, http.StatusBadRequest, "no changes"},
		{&services.Error{Kind: services.KindConflict, Resource: services.ResourceUser}, http.StatusConflict, "username already taken"},
		{&services.Error{Kind: services.KindConflict, Resource: services.ResourceLike}, http.StatusBadRequest, "like already exists"},
		{&services.Error{Kind: services.KindUnauthorized, Resource: services.ResourceComment}, http.StatusForbidden, "not allowed to modify this comment"},
		{&services.Error{Kind: services.KindUnauthenticated}, http.StatusUnauthorized, "invalid username or password"},
		{&services.Error{Kind: services.KindUnknown, Err: errors.New("pq: relation missing")}, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
			assert.Equal(t, tt.msg, messageFor(tt.err))
		})
	}
}

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondError(t *testing.T) {
	w := respond(fmt.Errorf("list: %w", &services.Error{Kind: services.KindConflict, Resource: services.ResourceLike}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"post already liked"}`, w.Body.String())

	w = respond(&services.Error{Kind: services.KindUnknown, Err: errors.New("secret storage detail")})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret storage detail")

	w = respond(&services.Error{Kind: services.KindUnknown, Err: context.DeadlineExceeded})
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	w = respond(errors.New("untyped"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
}

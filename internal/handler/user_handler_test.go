package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mystic-books/internal/model"
)

func TestUserHandler_GetRole(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("known user", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetRole", mock.Anything, "lib@x.com").Return(model.RoleLibrarian, nil)

		h := NewUserHandler(svc, logger)
		req := httptest.NewRequest(http.MethodGet, "/users/role/lib@x.com", nil)
		req.SetPathValue("email", "lib@x.com")
		rec := httptest.NewRecorder()
		h.GetRole(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"librarian"`)
	})

	t.Run("unknown user is 404 with a null role", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetRole", mock.Anything, "ghost@x.com").Return("", model.ErrUserNotFound)

		h := NewUserHandler(svc, logger)
		req := httptest.NewRequest(http.MethodGet, "/users/role/ghost@x.com", nil)
		req.SetPathValue("email", "ghost@x.com")
		rec := httptest.NewRecorder()
		h.GetRole(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":null`)
	})
}

func TestUserHandler_Register(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("created", func(t *testing.T) {
		userID := uuid.New()
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, mock.AnythingOfType("*model.UserRequest")).
			Return(&model.CreateResult{InsertedID: &userID}, nil)

		h := NewUserHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.Register(rec, authedRequest(t, http.MethodPost, "/users", model.UserRequest{Name: "A", Email: "a@x.com"}, testBuyer))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("existing email is 200 with null insertedId", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(&model.CreateResult{Message: "User already exists"}, nil)

		h := NewUserHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.Register(rec, authedRequest(t, http.MethodPost, "/users", model.UserRequest{Name: "A", Email: "a@x.com"}, testBuyer))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"insertedId":null`)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, model.ErrUnknownRole)

		h := NewUserHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.Register(rec, authedRequest(t, http.MethodPost, "/users", model.UserRequest{Name: "A", Email: "a@x.com", Role: "owner"}, testBuyer))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandler_SetRole(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	t.Run("updated", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("SetRole", mock.Anything, userID, model.RoleLibrarian).Return(nil)

		h := NewUserHandler(svc, logger)
		req := authedRequest(t, http.MethodPatch, "/users/role/"+userID.String(), model.RoleRequest{Role: model.RoleLibrarian}, testBuyer)
		req.SetPathValue("id", userID.String())
		rec := httptest.NewRecorder()
		h.SetRole(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Role updated")
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("SetRole", mock.Anything, userID, model.RoleAdmin).Return(model.ErrUserNotFound)

		h := NewUserHandler(svc, logger)
		req := authedRequest(t, http.MethodPatch, "/users/role/"+userID.String(), model.RoleRequest{Role: model.RoleAdmin}, testBuyer)
		req.SetPathValue("id", userID.String())
		rec := httptest.NewRecorder()
		h.SetRole(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

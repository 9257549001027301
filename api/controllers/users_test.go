package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/easemart/easemart-backend/api/controllers"
	"github.com/easemart/easemart-backend/internal/users"
	pkgerrors "github.com/easemart/easemart-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubUsersService struct {
	listResp   []users.UserDTO
	getResp    *users.UserDTO
	updateRows int64
	deleteRows int64
	err        error
	gotLimit   int
	gotID      uuid.UUID
	gotUpdate  *users.UpdateUserInput
}

func (s *stubUsersService) List(_ context.Context, limit int) ([]users.UserDTO, error) {
	s.gotLimit = limit
	return s.listResp, s.err
}

func (s *stubUsersService) Get(_ context.Context, id uuid.UUID) (*users.UserDTO, error) {
	s.gotID = id
	return s.getResp, s.err
}

func (s *stubUsersService) Update(_ context.Context, id uuid.UUID, input users.UpdateUserInput) (int64, error) {
	s.gotID = id
	s.gotUpdate = &input
	return s.updateRows, s.err
}

func (s *stubUsersService) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	s.gotID = id
	return s.deleteRows, s.err
}

func TestUsersListNeverExposesLogonKeyHash(t *testing.T) {
	svc := &stubUsersService{listResp: []users.UserDTO{{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		FullName: "Alice",
	}}}
	rec := routeRequest(t, http.MethodGet, "/user", "/user", "",
		controllers.UsersList(svc, testLogger()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "logon_key")
	require.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestUsersGet(t *testing.T) {
	id := uuid.New()
	svc := &stubUsersService{getResp: &users.UserDTO{ID: id, Email: "bob@example.com"}}
	rec := routeRequest(t, http.MethodGet, "/user/{id}", "/user/"+id.String(), "",
		controllers.UsersGet(svc, testLogger()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, svc.gotID)

	var envelope struct {
		Result users.UserDTO `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "bob@example.com", envelope.Result.Email)
}

func TestUsersGetInvalidID(t *testing.T) {
	svc := &stubUsersService{}
	rec := routeRequest(t, http.MethodGet, "/user/{id}", "/user/42", "",
		controllers.UsersGet(svc, testLogger()))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid user id")
}

func TestUsersUpdate(t *testing.T) {
	id := uuid.New()
	svc := &stubUsersService{updateRows: 1}
	rec := routeRequest(t, http.MethodPut, "/user/{id}", "/user/"+id.String(),
		`{"full_name":"Renamed"}`,
		controllers.UsersUpdate(svc, testLogger()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Renamed", *svc.gotUpdate.FullName)
	require.Nil(t, svc.gotUpdate.LogonKey)
	require.JSONEq(t, `{"result":1}`, rec.Body.String())
}

func TestUsersUpdateNotFound(t *testing.T) {
	svc := &stubUsersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	rec := routeRequest(t, http.MethodPut, "/user/{id}", "/user/"+uuid.NewString(),
		`{"full_name":"Ghost"}`,
		controllers.UsersUpdate(svc, testLogger()))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersDelete(t *testing.T) {
	id := uuid.New()
	svc := &stubUsersService{deleteRows: 1}
	rec := routeRequest(t, http.MethodDelete, "/user/{id}", "/user/"+id.String(), "",
		controllers.UsersDelete(svc, testLogger()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, svc.gotID)
	require.JSONEq(t, `{"result":1}`, rec.Body.String())
}

func TestHealthAndWelcome(t *testing.T) {
	rec := routeRequest(t, http.MethodGet, "/", "/", "", controllers.Welcome())
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":"Welcome to Ease Mart API!"}`, rec.Body.String())
}

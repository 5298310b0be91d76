// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/facetrace/internal/auth"
	"github.com/taibuivan/facetrace/internal/platform/constants"
	"github.com/taibuivan/facetrace/internal/platform/sec"
)

type testAPI struct {
	router     http.Handler
	repository *memoryUserRepository
	tokens     *sec.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	repository := newMemoryUserRepository()
	service, tokens := newTestService(t, repository)

	router := chi.NewRouter()
	router.Mount("/api/auth", auth.NewHandler(service, tokens.TTL()).Routes())

	return &testAPI{router: router, repository: repository, tokens: tokens}
}

func (api *testAPI) do(t *testing.T, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	recorder := httptest.NewRecorder()
	api.router.ServeHTTP(recorder, request)
	return recorder
}

func (api *testAPI) postJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	return api.do(t, http.MethodPost, path, "application/json", body)
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func sessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func assertSessionCookie(t *testing.T, cookie *http.Cookie) {
	t.Helper()

	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3*24*60*60, cookie.MaxAge)
}

const annJSON = `{"name":"Ann","email":"ann@x.com","password":"secret1"}`

/*
TestRegisterEndpoint_Success returns 201 with the created user and a session cookie.
*/
func TestRegisterEndpoint_Success(t *testing.T) {
	api := newTestAPI(t)

	recorder := api.postJSON(t, "/api/auth/register", annJSON)
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Registration successful!", body["message"])

	createdUser, ok := body["createdUser"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ann@x.com", createdUser["email"])
	assert.Equal(t, "Ann", createdUser["name"])
	assert.NotEmpty(t, createdUser["id"])
	assert.Contains(t, createdUser, "createdAt")
	assert.Contains(t, createdUser, "updatedAt")
	assert.NotContains(t, createdUser, "passwordHash")
	assert.NotContains(t, recorder.Body.String(), "$2a$")

	cookie := sessionCookie(recorder)
	assertSessionCookie(t, cookie)

	userID, err := api.tokens.VerifyToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, createdUser["id"], userID)
}

/*
TestRegisterEndpoint_Duplicate returns 400 with the conflict message.
*/
func TestRegisterEndpoint_Duplicate(t *testing.T) {
	api := newTestAPI(t)

	require.Equal(t, http.StatusCreated, api.postJSON(t, "/api/auth/register", annJSON).Code)

	recorder := api.postJSON(t, "/api/auth/register", annJSON)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "user already registered", decodeBody(t, recorder)["message"])
	assert.Nil(t, sessionCookie(recorder))
}

/*
TestRegisterEndpoint_Rejections covers the remaining 400 responses.
*/
func TestRegisterEndpoint_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"weak_password", `{"name":"Ann","email":"ann@x.com","password":"12345"}`, "password must be at least 6 characters"},
		{"missing_password", `{"name":"Ann","email":"ann@x.com"}`, "password must be at least 6 characters"},
		{"missing_name", `{"email":"ann@x.com","password":"secret1"}`, "Validation failed"},
		{"blank_email", `{"name":"Ann","email":"  ","password":"secret1"}`, "Validation failed"},
		{"malformed_json", `{"name":`, "Invalid request payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			recorder := api.postJSON(t, "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, tt.message, decodeBody(t, recorder)["message"])
			assert.Zero(t, api.repository.count())
		})
	}
}

/*
TestRegisterEndpoint_ValidationDetails lists the failing fields.
*/
func TestRegisterEndpoint_ValidationDetails(t *testing.T) {
	api := newTestAPI(t)

	recorder := api.postJSON(t, "/api/auth/register", `{"password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	details, ok := decodeBody(t, recorder)["details"].([]any)
	require.True(t, ok)

	fields := make([]string, 0, len(details))
	for _, detail := range details {
		fields = append(fields, detail.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"name", "email"}, fields)
}

/*
TestRegisterEndpoint_FormBody accepts URL-encoded bodies.
*/
func TestRegisterEndpoint_FormBody(t *testing.T) {
	api := newTestAPI(t)

	form := url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "password": {"secret1"}}
	recorder := api.do(t, http.MethodPost, "/api/auth/register", "application/x-www-form-urlencoded", form.Encode())

	require.Equal(t, http.StatusCreated, recorder.Code)
	assertSessionCookie(t, sessionCookie(recorder))
}

/*
TestRegisterEndpoint_StoreFailure hides the cause behind the generic message.
*/
func TestRegisterEndpoint_StoreFailure(t *testing.T) {
	api := newTestAPI(t)
	api.repository.err = errors.New("dial tcp 10.0.0.5:5432: connection refused")

	recorder := api.postJSON(t, "/api/auth/register", annJSON)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Internal Server Error: Could not register user.", decodeBody(t, recorder)["message"])
	assert.NotContains(t, recorder.Body.String(), "10.0.0.5")
	assert.Nil(t, sessionCookie(recorder))
}

/*
TestLoginEndpoint covers success and every 400 message.
*/
func TestLoginEndpoint(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusCreated, api.postJSON(t, "/api/auth/register", annJSON).Code)
	api.repository.put(auth.User{ID: "0190a1b2-0000-7000-8000-000000000002", Name: "Oauth", Email: "oauth@x.com"})

	t.Run("success", func(t *testing.T) {
		recorder := api.postJSON(t, "/api/auth/login", `{"email":"ann@x.com","password":"secret1"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody(t, recorder)
		assert.Equal(t, "Login successful!", body["message"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ann@x.com", user["email"])
		assert.NotContains(t, user, "passwordHash")

		assertSessionCookie(t, sessionCookie(recorder))
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"wrong_password", `{"email":"ann@x.com","password":"wrong"}`, "password is incorrect"},
		{"empty_password", `{"email":"ann@x.com","password":""}`, "password is incorrect"},
		{"unknown_email", `{"email":"ghost@x.com","password":"anything"}`, "user does not exist"},
		{"no_password_set", `{"email":"oauth@x.com","password":"anything"}`, "This account was not set up with a password. Please check your registration method."},
		{"missing_email", `{"password":"secret1"}`, "Validation failed"},
		{"malformed_json", `not json`, "Invalid request payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := api.postJSON(t, "/api/auth/login", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, tt.message, decodeBody(t, recorder)["message"])
			assert.Nil(t, sessionCookie(recorder))
		})
	}
}

/*
TestLoginEndpoint_StoreFailure hides the cause behind the generic message.
*/
func TestLoginEndpoint_StoreFailure(t *testing.T) {
	api := newTestAPI(t)
	api.repository.err = errors.New("connection reset by peer")

	recorder := api.postJSON(t, "/api/auth/login", `{"email":"ann@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Internal Server Error: Could not log in.", decodeBody(t, recorder)["message"])
}

/*
TestLogoutEndpoint clears the cookie whether or not a session exists.
*/
func TestLogoutEndpoint(t *testing.T) {
	api := newTestAPI(t)

	for _, cookieValue := range []string{"", "stale-or-forged"} {
		request := httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil)
		if cookieValue != "" {
			request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: cookieValue})
		}

		recorder := httptest.NewRecorder()
		api.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "logout Successfully", decodeBody(t, recorder)["message"])

		cookie := sessionCookie(recorder)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
		assert.True(t, cookie.Secure)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	}
}

/*
TestMethodRouting rejects verbs the endpoints do not serve.
*/
func TestMethodRouting(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusMethodNotAllowed, api.do(t, http.MethodGet, "/api/auth/register", "", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, api.do(t, http.MethodPost, "/api/auth/logout", "", "").Code)
}

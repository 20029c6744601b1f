package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledgeflow/backend/core/user"
)

func Test_authApi_register(t *testing.T) {
	taken, _ := signUp(t, "taken", "taken@test.cd", "mdr123")

	tests := []httpTest{
		{
			name:     "empty body",
			body:     marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "this field is required",
				"password": "this field is required",
				"email":    "this field is required",
			}),
		},
		{
			name:     "short username and password, bad email",
			body:     marchallObj(t, map[string]string{"username": "ab", "password": "12345", "email": "nope"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "username must be at least 3 characters in length",
				"password": "password must be at least 6 characters in length",
				"email":    "email must be a valid email address",
			}),
		},
		{
			name:     "username with invalid characters",
			body:     marchallObj(t, map[string]string{"username": "a b c", "password": "mdr123", "email": "abc@test.cd"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "only alphanumeric characters and underscores are allowed",
			}),
		},
		{
			name:     "username taken",
			body:     marchallObj(t, map[string]string{"username": taken.Username, "password": "mdr123", "email": "other@test.cd"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": user.ErrUsernameExists.Error(),
			}),
		},
		{
			name:     "ok",
			body:     marchallObj(t, map[string]string{"username": "newbie", "password": "mdr123", "email": "newbie@test.cd", "fullName": "New Bie"}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/register", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusCreated {
				var usr user.User
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
				assert.Equal(t, "newbie", usr.Username)
				assert.Equal(t, "newbie@test.cd", usr.Email)
				assert.Equal(t, "New Bie", usr.FullName)
				assert.True(t, usr.IsActive)
				assert.NotEmpty(t, rec.Result().Cookies(), "register should start a session")
			}
		})
	}
}

func Test_authApi_login(t *testing.T) {
	usr, _ := signUp(t, "loginusr", "loginusr@test.cd", "mdr123")

	tests := []httpTest{
		{
			name:     "empty body",
			body:     marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name:     "unknown user",
			body:     marchallObj(t, map[string]string{"username": "ghost", "password": "mdr123"}),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errInvalidCredentials),
		},
		{
			name:     "wrong password",
			body:     marchallObj(t, map[string]string{"username": usr.Username, "password": "nope42"}),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errInvalidCredentials),
		},
		{
			name:     "ok",
			body:     marchallObj(t, map[string]string{"username": usr.Username, "password": "mdr123"}),
			wantCode: http.StatusOK,
		},
		{
			name:     "username is case-insensitive",
			body:     marchallObj(t, map[string]string{"username": "LoginUsr", "password": "mdr123"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var got user.User
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, usr.ID, got.ID)
				assert.False(t, got.LastLogin.IsZero(), "login should set lastLogin")
				assert.NotEmpty(t, rec.Result().Cookies())
			}
		})
	}
}

func Test_authApi_current(t *testing.T) {
	usr, cookies := signUp(t, "currentusr", "currentusr@test.cd", "mdr123")

	t.Run("no session", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/auth/current")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)}, rec)
	})

	t.Run("with session", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/current", cookies)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, usr.ID, got.ID)
		assert.Equal(t, usr.Username, got.Username)
	})
}

func Test_authApi_logout(t *testing.T) {
	_, cookies := signUp(t, "logoutusr", "logoutusr@test.cd", "mdr123")

	t.Run("without session is a no-op", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/auth/logout")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("clears the session", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/auth/logout", cookies)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		// the cleared cookie no longer authenticates
		req, rec2 := newAuthRequest(http.MethodGet, "/api/auth/current", rec.Result().Cookies())
		app.ServeHTTP(rec2, req)
		assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	})
}

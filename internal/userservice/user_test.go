package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/folio/internal/common"
)

const testPassword = "Test_1234!"

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, *common.MockMessageProducer, func() error) {
	db := common.TestDB("file://../../migrations", t)

	mb := new(common.MockMessageProducer)
	mb.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.UserExchange).Return(nil)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM users")
		return err
	}

	return NewUserService(db, mb, []string{"Admin@Example.com"}), db, mb, cleanup
}

// publishedToken returns the activation token of the last user.created event.
func publishedToken(t *testing.T, mb *common.MockMessageProducer) string {
	t.Helper()

	require.NotEmpty(t, mb.Calls)
	last := mb.Calls[len(mb.Calls)-1]

	var evt userCreatedEvent
	require.NoError(t, json.Unmarshal(last.Arguments.Get(1).([]byte), &evt))

	return evt.Token
}

func TestCreateUser(t *testing.T) {
	s, db, _, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		username    string
		email       string
		password    string
		setup       func() error
		expectedErr error
	}{
		{
			name:     "valid user",
			username: "testuser",
			email:    "testuser@example.com",
			password: testPassword,
		},
		{
			name:        "empty payload",
			expectedErr: common.ValidationError{Errors: map[string]string{"username": "must be provided", "email": "must be provided", "password": "must be provided"}},
		},
		{
			name:     "duplicate username",
			username: "testuser",
			email:    "other@example.com",
			password: testPassword,
			setup: func() error {
				return s.CreateUser(context.Background(), "testuser", "testuser@example.com", testPassword)
			},
			expectedErr: ErrDuplicateUsername,
		},
		{
			name:     "duplicate email",
			username: "otheruser",
			email:    "testuser@example.com",
			password: testPassword,
			setup: func() error {
				return s.CreateUser(context.Background(), "testuser", "testuser@example.com", testPassword)
			},
			expectedErr: ErrDuplicateEmail,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if tc.setup != nil {
				require.NoError(t, tc.setup())
			}

			err := s.CreateUser(ctx, tc.username, tc.email, tc.password)
			if ve, ok := tc.expectedErr.(common.ValidationError); ok {
				var got common.ValidationError
				require.ErrorAs(t, err, &got)
				for field := range ve.Errors {
					assert.Contains(t, got.Errors, field)
				}
			} else {
				assert.Equal(t, tc.expectedErr, err)
			}

			if err == nil {
				var count int
				err = db.QueryRow("SELECT COUNT(*) FROM tokens").Scan(&count)
				assert.NoError(t, err)
				assert.Equal(t, 1, count)
			}

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}
}

func TestActivateUser(t *testing.T) {
	s, db, mb, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	t.Run("regular user", func(t *testing.T) {
		require.NoError(t, s.CreateUser(ctx, "testuser", "testuser@example.com", testPassword))
		token := publishedToken(t, mb)

		err := s.ActivateUser(ctx, token)
		assert.NoError(t, err)

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM users WHERE activated = true").Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)

		err = db.QueryRow("SELECT COUNT(*) FROM tokens").Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)

		err = db.QueryRow("SELECT COUNT(*) FROM user_permissions WHERE permission = $1", PermissionAdmin).Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)

		// tokens are single use
		assert.ErrorIs(t, s.ActivateUser(ctx, token), ErrNotFound)

		t.Cleanup(func() {
			assert.NoError(t, cleanup())
		})
	})

	t.Run("admin email", func(t *testing.T) {
		require.NoError(t, s.CreateUser(ctx, "siteadmin", "admin@example.com", testPassword))

		err := s.ActivateUser(ctx, publishedToken(t, mb))
		assert.NoError(t, err)

		auth, err := s.LoginUser(ctx, "siteadmin", testPassword)
		require.NoError(t, err)

		user, err := s.GetUserByAccessToken(ctx, auth.AccessTokenPlain)
		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
		assert.True(t, user.HasPermission(PermissionWriteBlog))

		t.Cleanup(func() {
			assert.NoError(t, cleanup())
		})
	})

	t.Run("invalid token", func(t *testing.T) {
		err := s.ActivateUser(ctx, "invalid token")
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"token": "invalid token"}}, err)
	})
}

func TestLoginUser(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "testuser", "testuser@example.com", testPassword))
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	testCases := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{name: "valid credentials", username: "testuser", password: testPassword},
		{name: "unknown user", username: "nobody", password: testPassword, expectedErr: ErrAuthenticationFailure},
		{name: "wrong password", username: "testuser", password: "Wrong_1234!", expectedErr: ErrAuthenticationFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			auth, err := s.LoginUser(ctx, tc.username, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Len(t, auth.AccessTokenPlain, 26)
				assert.Len(t, auth.RefreshTokenPlain, 26)

				user, err := s.GetUserByAccessToken(ctx, auth.AccessTokenPlain)
				assert.NoError(t, err)
				assert.Equal(t, "testuser", user.Username)
				assert.Empty(t, user.Permissions)
			}
		})
	}
}

func TestRefreshAndLogout(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "testuser", "testuser@example.com", testPassword))
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	auth, err := s.LoginUser(ctx, "testuser", testPassword)
	require.NoError(t, err)

	refreshed, err := s.RefreshAuthToken(ctx, auth.RefreshTokenPlain)
	require.NoError(t, err)
	assert.NotEqual(t, auth.AccessTokenPlain, refreshed.AccessTokenPlain)

	// the old pair was replaced
	_, err = s.GetUserByAccessToken(ctx, auth.AccessTokenPlain)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.LogoutUser(ctx, refreshed.UserID)
	assert.NoError(t, err)

	_, err = s.GetUserByAccessToken(ctx, refreshed.AccessTokenPlain)
	assert.ErrorIs(t, err, ErrNotFound)
}

package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/sushihentaime/folio/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("unauthorized access")
)

// NewUserService wires the user model to the broker. Accounts whose email is
// listed in adminEmails receive the admin permission when activated.
func NewUserService(db *sql.DB, mb common.MessageProducer, adminEmails []string) *UserService {
	admins := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins = append(admins, e)
		}
	}

	return &UserService{
		m:           newUserModel(db),
		mb:          mb,
		adminEmails: admins,
	}
}

// CreateUser creates a new user account and publishes a user.created event
// carrying the activation token.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) error {
	v := common.NewValidator()
	validateUsername(v, username)
	common.ValidateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
	}

	err := u.Password.set(password)
	if err != nil {
		return err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return err
	}

	token, err := s.m.createToken(ctx, u.ID, ActivationTokenTime, TokenScopeActivate)
	if err != nil {
		return err
	}

	msg, err := json.Marshal(userCreatedEvent{
		Username: u.Username,
		Email:    u.Email,
		Token:    token.Plain,
	})
	if err != nil {
		return err
	}

	return s.mb.Publish(ctx, msg, common.UserCreatedKey, common.UserExchange)
}

// ActivateUser activates the account owning the token, deletes the token and
// grants the write permission (plus the admin permission for site admins).
func (s *UserService) ActivateUser(ctx context.Context, token string) error {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.m.getUser(ctx, TokenScopeActivate, hashToken(token))
	if err != nil {
		return err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = s.m.activateUserAccount(tx, ctx, user.ID, user.Version)
	if err != nil {
		return err
	}

	err = s.m.deleteToken(tx, ctx, user.ID, TokenScopeActivate)
	if err != nil {
		return err
	}

	permissions := []Permission{PermissionWriteBlog}
	if s.isAdminEmail(user.Email) {
		permissions = append(permissions, PermissionAdmin)
	}

	err = s.m.addUserPermission(tx, ctx, user.ID, permissions...)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoginUser checks the credentials and issues a fresh access/refresh pair,
// replacing any pair the user already had.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateLogin(v, username, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return s.issueAuthToken(ctx, user.ID)
}

// RefreshAuthToken exchanges a live refresh token for a new pair.
func (s *UserService) RefreshAuthToken(ctx context.Context, refreshToken string) (*AuthToken, error) {
	v := common.NewValidator()
	ValidateToken(v, refreshToken)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	userID, err := s.m.getUserIDByRefreshToken(ctx, hashToken(refreshToken))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	return s.issueAuthToken(ctx, userID)
}

func (s *UserService) issueAuthToken(ctx context.Context, userID int) (*AuthToken, error) {
	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = s.m.deleteAuthToken(tx, ctx, userID)
	if err != nil {
		return nil, err
	}

	authToken, err := s.m.createAuthToken(tx, ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return authToken, nil
}

func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByAccessToken(ctx, hashToken(token))
}

func (s *UserService) LogoutUser(ctx context.Context, userId int) error {
	v := common.NewValidator()
	common.ValidateID(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = s.m.deleteAuthToken(tx, ctx, userId)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *UserService) isAdminEmail(email string) bool {
	return slices.Contains(s.adminEmails, strings.ToLower(email))
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsActivated() bool {
	return u.Activated
}

package services

import (
	"context"
	"errors"
	"strings"

	"newsroom/internal/models"
	"newsroom/internal/utils"

	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthService struct {
	db     *gorm.DB
	tokens *Tokens
}

func NewAuthService(db *gorm.DB, tokens *Tokens) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// Session is the result of a successful sign-up or log-in.
type Session struct {
	User  models.User
	Token string
}

// SignUp creates the account and signs a token for it. The username unique
// index rejects duplicates.
func (s *AuthService) SignUp(ctx context.Context, username, password, name string) (*Session, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" {
		return nil, invalidInput(ResourceUser, "username")
	}
	if len(password) < minPasswordLength {
		return nil, invalidInput(ResourceUser, "password")
	}
	if name == "" {
		name = username
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, storageFault(err, "hash password")
	}

	user := models.User{
		Username: username,
		Password: hash,
		Name:     name,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, conflict(ResourceUser)
		}
		return nil, storageFault(err, "create user")
	}

	return s.session(user)
}

func (s *AuthService) LogIn(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalidInput(ResourceUser, "credentials")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthenticated()
		}
		return nil, storageFault(err, "find user by username")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, unauthenticated()
	}

	return s.session(user)
}

// Verify resolves a bearer token to a user id.
func (s *AuthService) Verify(token string) (uint, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return 0, &Error{Kind: KindUnauthenticated, Resource: ResourceUser, Err: err}
	}
	return id, nil
}

func (s *AuthService) session(user models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Err: err}
	}
	return &Session{User: user, Token: token}, nil
}

package service

import (
	"net/http"
	"strings"

	"github.com/starwave-dev/starboard/internal/api"
	"github.com/starwave-dev/starboard/internal/domain"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/starwave-dev/starboard/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(req api.RegisterRequest) error
	Login(req api.LoginRequest) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(user domain.User) (int64, error)
	User(email string) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

func (a *Auth) Register(req api.RegisterRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	_, err = a.storage.SaveUser(domain.User{
		Email:       strings.ToLower(req.Email),
		DisplayName: req.DisplayName,
		PassHash:    string(passHash),
	})
	return err
}

// Login verifies credentials and returns a signed access token.
func (a *Auth) Login(req api.LoginRequest) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", err
	}

	user, err := a.storage.User(strings.ToLower(req.Email))
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Wrong email or password", StatusCode: http.StatusUnauthorized}
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(req.Password)); err != nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Wrong email or password", StatusCode: http.StatusUnauthorized}
	}

	return a.jwt.NewToken(user)
}

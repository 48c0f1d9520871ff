package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/auth"
)

type registration struct {
	Username string `validate:"required,alphanum,min=2,max=24"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

var registrationMessages = map[string]string{
	"Username": "username must be 2 to 24 letters or digits",
	"Email":    "email is not valid",
	"Password": "password must be 8 to 72 characters",
}

type service struct {
	userRepo domain.UserRepository
	tokens   auth.JWT
	validate *validator.Validate
}

var _ domain.UserUsecase = (*service)(nil)

func NewService(u domain.UserRepository, jwtSecret []byte, ttl time.Duration) *service {
	return &service{
		userRepo: u,
		tokens:   auth.NewJWT(jwtSecret, ttl),
		validate: validator.New(),
	}
}

func (s *service) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	in := registration{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.User{}, err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, registrationMessages[fe.Field()])
		}
		return domain.User{}, domain.NewValidationError(msgs)
	}

	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return domain.User{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Errorf("failed to hash password: %v", err)
		return domain.User{}, domain.ErrInternalServerError
	}

	u := domain.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Insert(ctx, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Login returns a signed token. Unknown users and wrong passwords look the same to the caller.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return s.tokens.Sign(u.ID, u.Username)
}

func (s *service) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

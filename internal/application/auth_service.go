package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	repo "github.com/fixlocal/fixlocal-api/internal/domain/repository"
	"github.com/fixlocal/fixlocal-api/pkg/helpers"
)

// GoogleTokenVerifier validates a Google-issued ID token and returns its
// verified claims.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*helpers.GoogleIdentity, error)
}

// AuthService implements registration, login, federated login, and profile
// reads. It owns the Credential Store contract: Account records are
// created and mutated only through it.
type AuthService struct {
	Accounts  repo.AccountRepository
	JWT       *helpers.JWTManager
	Google    GoogleTokenVerifier
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewAuthService(accounts repo.AccountRepository, jwt *helpers.JWTManager, google GoogleTokenVerifier, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *AuthService {
	return &AuthService{Accounts: accounts, JWT: jwt, Google: google, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	Role            entity.Role
	BusinessName    string
	ServicesOffered []string
}

// Register creates an Account with a freshly hashed password and issues a
// session token. Duplicate emails fail with ErrEmailTaken and create
// nothing.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.Account, string, error) {
	if existing, err := s.Accounts.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	a := &entity.Account{
		Name:            in.Name,
		Email:           in.Email,
		Password:        hash,
		Role:            in.Role,
		BusinessName:    in.BusinessName,
		ServicesOffered: in.ServicesOffered,
	}
	if err := s.Accounts.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	token, _, err := s.JWT.GenerateToken(a.ID)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// Login verifies email/password and issues a session token. The caller
// never learns whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Account, string, error) {
	a, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil || a == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !helpers.CheckPassword(a.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, _, err := s.JWT.GenerateToken(a.ID)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// GoogleLogin verifies a Google ID token and logs the account in, creating
// it on first sight of the verified email. Created accounts have no
// password and default role user.
func (s *AuthService) GoogleLogin(ctx context.Context, rawToken string) (*entity.Account, string, error) {
	id, err := s.Google.Verify(ctx, rawToken)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("google token verification failed")
		}
		return nil, "", ErrFederatedAuth
	}
	a, err := s.Accounts.GetByEmail(ctx, id.Email)
	if err != nil || a == nil {
		a = &entity.Account{
			Name:      id.Name,
			Email:     id.Email,
			GoogleID:  id.SubjectID,
			AvatarURL: id.Picture,
			Role:      entity.RoleUser,
		}
		if err := s.Accounts.Create(ctx, a); err != nil {
			// Lost a race with a concurrent first login for the same email.
			if errors.Is(err, repo.ErrDuplicate) {
				if a, err = s.Accounts.GetByEmail(ctx, id.Email); err != nil {
					return nil, "", err
				}
			} else {
				return nil, "", err
			}
		}
	}
	token, _, err := s.JWT.GenerateToken(a.ID)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// GetProfile returns the account's own fields.
func (s *AuthService) GetProfile(ctx context.Context, accountID string) (*entity.Account, error) {
	a, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil || a == nil {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// GetProviderProfile returns a provider's public record; accounts that do
// not exist or are not providers yield ErrProviderNotFound.
func (s *AuthService) GetProviderProfile(ctx context.Context, id string) (*entity.Account, error) {
	a, err := s.Accounts.GetByID(ctx, id)
	if err != nil || a == nil || !a.IsProvider() {
		return nil, ErrProviderNotFound
	}
	return a, nil
}

// ListProviders returns every provider account.
func (s *AuthService) ListProviders(ctx context.Context) ([]entity.Account, error) {
	return s.Accounts.ListProviders(ctx)
}

// UploadAvatar stores an avatar image in GCS and saves its public URL on
// the account.
func (s *AuthService) UploadAvatar(ctx context.Context, accountID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	a, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil || a == nil {
		return "", ErrAccountNotFound
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", accountID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	a.AvatarURL = url
	if err := s.Accounts.Update(ctx, a); err != nil {
		return "", err
	}
	return url, nil
}

package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	"github.com/fixlocal/fixlocal-api/internal/domain/repository"
	"github.com/fixlocal/fixlocal-api/pkg/helpers"
)

func testJWT() *helpers.JWTManager {
	return &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("issues token for new email", func(t *testing.T) {
		var created *entity.Account
		accounts := &fakeAccountRepo{
			createFn: func(ctx context.Context, a *entity.Account) error {
				a.ID = "acc-1"
				created = a
				return nil
			},
		}
		svc := NewAuthService(accounts, testJWT(), nil, nil, "", nil)

		a, token, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "supersecret",
			Role:     entity.RoleUser,
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if token == "" {
			t.Fatal("expected a session token")
		}
		if created == nil || created.Email != "alice@example.com" {
			t.Fatalf("unexpected created account: %+v", created)
		}
		if a.Password == "supersecret" {
			t.Fatal("password stored in plaintext")
		}
		if !helpers.CheckPassword(a.Password, "supersecret") {
			t.Fatal("stored hash does not match the password")
		}
	})

	t.Run("duplicate email creates nothing", func(t *testing.T) {
		createCalls := 0
		accounts := &fakeAccountRepo{
			getByEmailFn: func(ctx context.Context, email string) (*entity.Account, error) {
				return &entity.Account{ID: "acc-1", Email: email}, nil
			},
			createFn: func(ctx context.Context, a *entity.Account) error {
				createCalls++
				return nil
			},
		}
		svc := NewAuthService(accounts, testJWT(), nil, nil, "", nil)

		_, _, err := svc.Register(context.Background(), RegisterInput{
			Email:    "alice@example.com",
			Password: "supersecret",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("err = %v, want ErrEmailTaken", err)
		}
		if createCalls != 0 {
			t.Fatalf("Create called %d times, want 0", createCalls)
		}
	})

	t.Run("duplicate race maps to email taken", func(t *testing.T) {
		accounts := &fakeAccountRepo{
			createFn: func(ctx context.Context, a *entity.Account) error {
				return repository.ErrDuplicate
			},
		}
		svc := NewAuthService(accounts, testJWT(), nil, nil, "", nil)

		_, _, err := svc.Register(context.Background(), RegisterInput{
			Email:    "alice@example.com",
			Password: "supersecret",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("err = %v, want ErrEmailTaken", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := helpers.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	accounts := &fakeAccountRepo{
		getByEmailFn: func(ctx context.Context, email string) (*entity.Account, error) {
			if email == "bob@example.com" {
				return &entity.Account{ID: "acc-2", Email: email, Password: hash}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAuthService(accounts, testJWT(), nil, nil, "", nil)

	t.Run("matching password issues token", func(t *testing.T) {
		a, token, err := svc.Login(context.Background(), "bob@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if token == "" || a.ID != "acc-2" {
			t.Fatalf("unexpected result: account=%+v token=%q", a, token)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "bob@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever")
		_, _, errWrong := svc.Login(context.Background(), "bob@example.com", "wrong")
		if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
			t.Fatalf("errs = %v / %v, want ErrInvalidCredentials for both", errUnknown, errWrong)
		}
	})

	t.Run("federated-only account cannot password-login", func(t *testing.T) {
		federated := &fakeAccountRepo{
			getByEmailFn: func(ctx context.Context, email string) (*entity.Account, error) {
				return &entity.Account{ID: "acc-3", Email: email, GoogleID: "sub-3"}, nil
			},
		}
		svc := NewAuthService(federated, testJWT(), nil, nil, "", nil)
		_, _, err := svc.Login(context.Background(), "carol@example.com", "anything")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthService_GoogleLogin(t *testing.T) {
	identity := &helpers.GoogleIdentity{
		SubjectID: "google-sub-1",
		Email:     "dana@example.com",
		Name:      "Dana",
		Picture:   "https://lh3.example/avatar.png",
	}
	verifier := &fakeGoogleVerifier{
		verifyFn: func(ctx context.Context, raw string) (*helpers.GoogleIdentity, error) {
			if raw != "good-token" {
				return nil, helpers.ErrGoogleToken
			}
			return identity, nil
		},
	}

	t.Run("first login creates exactly one account", func(t *testing.T) {
		var store *entity.Account
		createCalls := 0
		accounts := &fakeAccountRepo{
			getByEmailFn: func(ctx context.Context, email string) (*entity.Account, error) {
				if store != nil && store.Email == email {
					return store, nil
				}
				return nil, repository.ErrNotFound
			},
			createFn: func(ctx context.Context, a *entity.Account) error {
				createCalls++
				a.ID = "acc-4"
				store = a
				return nil
			},
		}
		svc := NewAuthService(accounts, testJWT(), verifier, nil, "", nil)

		a1, token1, err := svc.GoogleLogin(context.Background(), "good-token")
		if err != nil {
			t.Fatalf("first GoogleLogin: %v", err)
		}
		a2, token2, err := svc.GoogleLogin(context.Background(), "good-token")
		if err != nil {
			t.Fatalf("second GoogleLogin: %v", err)
		}
		if createCalls != 1 {
			t.Fatalf("Create called %d times, want 1", createCalls)
		}
		if a1.ID != a2.ID {
			t.Fatalf("logins resolved different accounts: %q vs %q", a1.ID, a2.ID)
		}
		if token1 == "" || token2 == "" {
			t.Fatal("expected session tokens on both logins")
		}
		if store.GoogleID != identity.SubjectID || store.Role != entity.RoleUser || store.Password != "" {
			t.Fatalf("unexpected created account: %+v", store)
		}
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		accounts := &fakeAccountRepo{}
		svc := NewAuthService(accounts, testJWT(), verifier, nil, "", nil)
		_, _, err := svc.GoogleLogin(context.Background(), "forged")
		if !errors.Is(err, ErrFederatedAuth) {
			t.Fatalf("err = %v, want ErrFederatedAuth", err)
		}
	})

	t.Run("creation race falls back to the winner's account", func(t *testing.T) {
		accounts := &fakeAccountRepo{
			getByEmailFn: func() func(ctx context.Context, email string) (*entity.Account, error) {
				calls := 0
				return func(ctx context.Context, email string) (*entity.Account, error) {
					calls++
					if calls == 1 {
						return nil, repository.ErrNotFound
					}
					return &entity.Account{ID: "acc-winner", Email: email}, nil
				}
			}(),
			createFn: func(ctx context.Context, a *entity.Account) error {
				return repository.ErrDuplicate
			},
		}
		svc := NewAuthService(accounts, testJWT(), verifier, nil, "", nil)
		a, _, err := svc.GoogleLogin(context.Background(), "good-token")
		if err != nil {
			t.Fatalf("GoogleLogin: %v", err)
		}
		if a.ID != "acc-winner" {
			t.Fatalf("account ID = %q, want acc-winner", a.ID)
		}
	})
}

func TestAuthService_GetProviderProfile(t *testing.T) {
	accounts := &fakeAccountRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.Account, error) {
			switch id {
			case "prov-1":
				return &entity.Account{ID: id, Role: entity.RoleProvider, BusinessName: "Pipes & Co"}, nil
			case "user-1":
				return &entity.Account{ID: id, Role: entity.RoleUser}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAuthService(accounts, testJWT(), nil, nil, "", nil)

	if _, err := svc.GetProviderProfile(context.Background(), "prov-1"); err != nil {
		t.Fatalf("provider lookup: %v", err)
	}
	if _, err := svc.GetProviderProfile(context.Background(), "user-1"); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("user account err = %v, want ErrProviderNotFound", err)
	}
	if _, err := svc.GetProviderProfile(context.Background(), "missing"); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("missing account err = %v, want ErrProviderNotFound", err)
	}
}

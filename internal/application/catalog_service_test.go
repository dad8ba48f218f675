package application

import (
	"context"
	"errors"
	"testing"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
)

func TestCatalogService_Create(t *testing.T) {
	provider := &entity.Account{ID: "prov-1", Name: "Pat", Role: entity.RoleProvider}
	user := &entity.Account{ID: "user-1", Role: entity.RoleUser}

	t.Run("provider creates an owned listing", func(t *testing.T) {
		var created *entity.Service
		services := &fakeServiceRepo{
			createFn: func(ctx context.Context, s *entity.Service) error {
				s.ID = "svc-1"
				created = s
				return nil
			},
		}
		cat := NewCatalogService(services, nil, nil, "", nil)

		svc, err := cat.Create(context.Background(), provider, ServiceInput{
			Name: "Drain cleaning", Category: "plumbing", Price: 80, Location: "Austin",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if svc.ProviderID != provider.ID {
			t.Fatalf("ProviderID = %q, want %q", svc.ProviderID, provider.ID)
		}
		if created == nil || created.Name != "Drain cleaning" {
			t.Fatalf("unexpected stored service: %+v", created)
		}
	})

	t.Run("user role cannot create", func(t *testing.T) {
		createCalls := 0
		services := &fakeServiceRepo{
			createFn: func(ctx context.Context, s *entity.Service) error {
				createCalls++
				return nil
			},
		}
		cat := NewCatalogService(services, nil, nil, "", nil)

		_, err := cat.Create(context.Background(), user, ServiceInput{Name: "x", Price: 1})
		if !errors.Is(err, ErrProviderRole) {
			t.Fatalf("err = %v, want ErrProviderRole", err)
		}
		if createCalls != 0 {
			t.Fatalf("Create called %d times, want 0", createCalls)
		}
	})
}

func TestCatalogService_Update(t *testing.T) {
	owner := &entity.Account{ID: "prov-1", Name: "Pat", Role: entity.RoleProvider}
	other := &entity.Account{ID: "prov-2", Role: entity.RoleProvider}

	stored := func() *entity.Service {
		return &entity.Service{
			ID:          "svc-1",
			ProviderID:  "prov-1",
			Name:        "Drain cleaning",
			Category:    "plumbing",
			Price:       80,
			Description: "Unclog anything",
			Location:    "Austin",
		}
	}

	t.Run("empty fields keep existing values", func(t *testing.T) {
		var saved *entity.Service
		services := &fakeServiceRepo{
			getByIDFn: func(ctx context.Context, id string) (*entity.Service, error) {
				return stored(), nil
			},
			updateFn: func(ctx context.Context, s *entity.Service) error {
				saved = s
				return nil
			},
		}
		cat := NewCatalogService(services, nil, nil, "", nil)

		svc, err := cat.Update(context.Background(), owner, "svc-1", ServiceInput{Price: 95})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if svc.Price != 95 {
			t.Fatalf("Price = %v, want 95", svc.Price)
		}
		if saved.Name != "Drain cleaning" || saved.Location != "Austin" {
			t.Fatalf("empty fields overwritten: %+v", saved)
		}
	})

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		updateCalls := 0
		services := &fakeServiceRepo{
			getByIDFn: func(ctx context.Context, id string) (*entity.Service, error) {
				return stored(), nil
			},
			updateFn: func(ctx context.Context, s *entity.Service) error {
				updateCalls++
				return nil
			},
		}
		cat := NewCatalogService(services, nil, nil, "", nil)

		_, err := cat.Update(context.Background(), other, "svc-1", ServiceInput{Name: "Hijacked"})
		if !errors.Is(err, ErrNotOwner) {
			t.Fatalf("err = %v, want ErrNotOwner", err)
		}
		if updateCalls != 0 {
			t.Fatalf("Update called %d times, want 0", updateCalls)
		}
	})

	t.Run("missing listing", func(t *testing.T) {
		services := &fakeServiceRepo{}
		cat := NewCatalogService(services, nil, nil, "", nil)
		_, err := cat.Update(context.Background(), owner, "nope", ServiceInput{Name: "x"})
		if !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("err = %v, want ErrServiceNotFound", err)
		}
	})
}

func TestCatalogService_Delete(t *testing.T) {
	owner := &entity.Account{ID: "prov-1", Role: entity.RoleProvider}
	other := &entity.Account{ID: "prov-2", Role: entity.RoleProvider}

	t.Run("owner deletes", func(t *testing.T) {
		deleted := ""
		services := &fakeServiceRepo{
			getByIDFn: func(ctx context.Context, id string) (*entity.Service, error) {
				return &entity.Service{ID: id, ProviderID: "prov-1"}, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		cat := NewCatalogService(services, nil, nil, "", nil)
		if err := cat.Delete(context.Background(), owner, "svc-1"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if deleted != "svc-1" {
			t.Fatalf("deleted = %q, want svc-1", deleted)
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		deleteCalls := 0
		services := &fakeServiceRepo{
			getByIDFn: func(ctx context.Context, id string) (*entity.Service, error) {
				return &entity.Service{ID: id, ProviderID: "prov-1"}, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleteCalls++
				return nil
			},
		}
		cat := NewCatalogService(services, nil, nil, "", nil)
		if err := cat.Delete(context.Background(), other, "svc-1"); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("err = %v, want ErrNotOwner", err)
		}
		if deleteCalls != 0 {
			t.Fatalf("Delete called %d times, want 0", deleteCalls)
		}
	})

	t.Run("missing listing", func(t *testing.T) {
		cat := NewCatalogService(&fakeServiceRepo{}, nil, nil, "", nil)
		if err := cat.Delete(context.Background(), owner, "nope"); !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("err = %v, want ErrServiceNotFound", err)
		}
	})
}

func TestCatalogService_List(t *testing.T) {
	listings := []entity.ServiceListing{
		{Service: entity.Service{ID: "svc-1", Name: "Drain cleaning"}, ProviderName: "Pat"},
	}
	services := &fakeServiceRepo{
		listFn: func(ctx context.Context) ([]entity.ServiceListing, error) {
			return listings, nil
		},
	}
	cat := NewCatalogService(services, nil, nil, "", nil)

	got, err := cat.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ProviderName != "Pat" {
		t.Fatalf("unexpected listings: %+v", got)
	}
}

func TestCatalogService_Search_NoBackend(t *testing.T) {
	cat := NewCatalogService(&fakeServiceRepo{}, nil, nil, "", nil)
	got, err := cat.Search(context.Background(), "plumbing", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result without a search backend, got %+v", got)
	}
}

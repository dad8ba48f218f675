package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	repo "github.com/fixlocal/fixlocal-api/internal/domain/repository"
	"github.com/fixlocal/fixlocal-api/pkg/helpers"
)

const (
	catalogCacheKey = "catalog:services"
	catalogCacheTTL = 60 * time.Second
)

// CatalogService implements CRUD over provider-listed services. Listings
// are publicly readable; mutation requires the owning provider. The public
// listing is cached in Redis and every service document is mirrored to
// Elasticsearch for search.
type CatalogService struct {
	Services repo.ServiceRepository
	Redis    *redis.Client
	ES       *elasticsearch.Client
	ESIndex  string
	Logger   *logrus.Logger
}

func NewCatalogService(services repo.ServiceRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Services: services, Redis: rdb, ES: es, ESIndex: esIndex, Logger: logger}
}

type ServiceInput struct {
	Name        string
	Category    string
	Price       float64
	Description string
	Location    string
}

// Create adds a listing owned by the acting provider. Non-providers fail
// with ErrProviderRole.
func (s *CatalogService) Create(ctx context.Context, actor *entity.Account, in ServiceInput) (*entity.Service, error) {
	if !actor.IsProvider() {
		return nil, ErrProviderRole
	}
	svc := &entity.Service{
		ProviderID:  actor.ID,
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
		Location:    in.Location,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	s.indexService(ctx, svc, actor.Name)
	return svc, nil
}

// List returns all listings with the provider name populated, serving from
// the Redis cache when warm.
func (s *CatalogService) List(ctx context.Context) ([]entity.ServiceListing, error) {
	if s.Redis != nil {
		var cached []entity.ServiceListing
		if ok, err := helpers.CacheGetJSON(ctx, s.Redis, catalogCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	listings, err := s.Services.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.CacheSetJSON(ctx, s.Redis, catalogCacheKey, listings, catalogCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("catalog cache write failed")
		}
	}
	return listings, nil
}

// Update mutates a listing's fields, keeping existing values for fields
// the caller leaves empty. Only the owning provider may update.
func (s *CatalogService) Update(ctx context.Context, actor *entity.Account, id string, in ServiceInput) (*entity.Service, error) {
	svc, err := s.Services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if svc.ProviderID != actor.ID {
		return nil, ErrNotOwner
	}
	if in.Name != "" {
		svc.Name = in.Name
	}
	if in.Category != "" {
		svc.Category = in.Category
	}
	if in.Price > 0 {
		svc.Price = in.Price
	}
	if in.Description != "" {
		svc.Description = in.Description
	}
	if in.Location != "" {
		svc.Location = in.Location
	}
	if err := s.Services.Update(ctx, svc); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	s.invalidateCache(ctx)
	s.indexService(ctx, svc, actor.Name)
	return svc, nil
}

// Delete removes a listing. Only the owning provider may delete.
func (s *CatalogService) Delete(ctx context.Context, actor *entity.Account, id string) error {
	svc, err := s.Services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	if svc.ProviderID != actor.ID {
		return ErrNotOwner
	}
	if err := s.Services.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	s.invalidateCache(ctx)
	s.deleteIndexed(ctx, id)
	return nil
}

// Search runs a multi_match query over the service index. With no
// Elasticsearch configured it returns an empty result rather than failing.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "category", "description", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.CacheDel(ctx, s.Redis, catalogCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("catalog cache invalidation failed")
	}
}

func (s *CatalogService) indexService(ctx context.Context, svc *entity.Service, providerName string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":            svc.ID,
		"provider_id":   svc.ProviderID,
		"provider_name": providerName,
		"name":          svc.Name,
		"category":      svc.Category,
		"price":         svc.Price,
		"description":   svc.Description,
		"location":      svc.Location,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: svc.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("service_id", svc.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("service_id", svc.ID).Warn("es index response error")
	}
}

func (s *CatalogService) deleteIndexed(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("service_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

package entity

import "time"

// Service is a listing created by a provider: an offered task with a price
// and a location label. ProviderID is a non-owning reference to an Account
// with role=provider.
type Service struct {
	ID          string
	ProviderID  string
	Name        string
	Category    string
	Price       float64
	Description string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ServiceListing is the public read model of a Service with the owning
// provider's display name joined in.
type ServiceListing struct {
	Service
	ProviderName string
}

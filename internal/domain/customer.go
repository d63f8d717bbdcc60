package domain

import "time"

// Customer represents a service customer and their primary service address.
type Customer struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	ServiceAddress string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

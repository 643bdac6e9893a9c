package entity

import "time"

// University representa una institución educativa destino.
type University struct {
	ID        string
	Name      string
	Country   string
	City      string
	Website   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

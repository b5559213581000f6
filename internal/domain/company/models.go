package company

import "time"

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CUIT      string    `json:"cuit"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package dto

import "github.com/MakMD/floor-boss-work-sub000/internal/entities"

// Actor identifies the authenticated user performing an operation. Services
// take it as an explicit parameter; nothing below the controller boundary
// reads identity out of ambient state.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == entities.RoleAdmin
}

// OptionDTO is the {value, label} projection the order form selects from.
type OptionDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

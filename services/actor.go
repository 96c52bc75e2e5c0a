package services

import "hackathon-portal-api/models"

// Actor is the verified identity the auth middleware resolved for a request.
// Services never read tokens themselves.
type Actor struct {
	UserID int
	Email  string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

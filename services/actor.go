package services

import "grant-management-api/models"

// Actor is the verified identity a transport layer resolved for the request.
// Services re-check role and ownership against it; they never read ambient
// session state.
type Actor struct {
	UserID int
	Role   string
}

func (a Actor) IsAdmin() bool      { return a.Role == models.RoleAdmin }
func (a Actor) IsResearcher() bool { return a.Role == models.RoleResearcher }
func (a Actor) IsReviewer() bool   { return a.Role == models.RoleReviewer }
func (a Actor) IsHOD() bool        { return a.Role == models.RoleHOD }

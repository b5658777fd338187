package service

import "cakehub/internal/microservices/http-api/models"

// Policy derives per-resource permissions from the resolved identity.
// There are no roles and no admin override.
type Policy struct{}

func NewPolicy() Policy {
	return Policy{}
}

// CanCreateContent is true for any logged-in user.
func (Policy) CanCreateContent(identity *Identity) bool {
	return identity != nil && identity.UserID != ""
}

// CanDelete is true only for the cake's owner.
func (p Policy) CanDelete(identity *Identity, cake *models.Cake) bool {
	return p.CanCreateContent(identity) && cake != nil && identity.UserID == cake.UserID
}

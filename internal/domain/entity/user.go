// Package entity contains the core business objects of the project.
package entity

// UserProfile is the public projection of a user record held by the
// external identity provider. Only fields safe to expose to any visitor
// are carried here.
type UserProfile struct {
	ID        string `json:"id"`        // Identity-provider user ID.
	Username  string `json:"username"`  // Public handle; the provider guarantees one for active accounts.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

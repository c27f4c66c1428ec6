package models

// Account is a registered user of the catalog.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // opaque credential, never serialized
}

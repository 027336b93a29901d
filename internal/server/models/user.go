// Package models defines the server-side data models persisted by userbook.
package models

// User is one contact record. ID is assigned by the store on create;
// PhoneNumber and EmailID are unique across all records.
type User struct {
	ID          int64
	PhoneNumber string
	FirstName   string
	LastName    string
	EmailID     string
	Address     string
}

// FullName is the display name used by the list page.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

package domain

type User struct {
	ID       int
	Name     string
	Username string
	Email    string
	Password string
}

// UserUpdate carries the writable user fields. An empty Password keeps the stored one.
type UserUpdate struct {
	Name     string
	Username string
	Email    string
	Password string
}

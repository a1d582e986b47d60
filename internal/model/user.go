package model

// A User represents an administrator account.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Email    string `msgpack:"email"    storm:"unique"`
	Password string `msgpack:"password"` // Argon2 hash
}

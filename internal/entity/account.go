package entity

// Account holds a username and its plaintext password. Credentials are
// compared verbatim, matching the wire protocol's account list record.
type Account struct {
	Username string
	Password string
}

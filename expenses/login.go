package expenses

import (
	"strings"
)

// UserColumns designates the username and password columns of the user worksheet. They
// default to the first and second columns respectively.
type UserColumns struct {
	Username string
	Password string
}

// FindUser returns the first user record matching the credentials. Usernames are compared
// case-insensitively, passwords exactly, both after trimming. Passwords are stored and
// compared as plain text.
func FindUser(username, password string, users *Table, columns UserColumns) (Record, bool) {
	if users == nil {
		return nil, false
	}

	u := columns.Username
	if u == "" && len(users.Header) > 0 {
		u = users.Header[0]
	}

	p := columns.Password
	if p == "" && len(users.Header) > 1 {
		p = users.Header[1]
	}

	if u == "" || p == "" {
		return nil, false
	}

	name := strings.ToLower(clean(username))
	secret := clean(password)

	for _, record := range users.Records {
		if strings.ToLower(clean(record.Get(u))) == name && clean(record.Get(p)) == secret {
			return record, true
		}
	}

	return nil, false
}

// Authenticate reports whether any user record matches the credentials.
func Authenticate(username, password string, users *Table, columns UserColumns) bool {
	_, ok := FindUser(username, password, users, columns)

	return ok
}

// Username returns the trimmed stored username of a user record.
func Username(record Record, users *Table, columns UserColumns) string {
	u := columns.Username
	if u == "" && users != nil && len(users.Header) > 0 {
		u = users.Header[0]
	}

	return clean(record.Get(u))
}

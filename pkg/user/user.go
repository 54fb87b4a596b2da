package user

import "time"

// User is a signed-in person's profile row. Uid comes from the identity
// provider and is the key everything else (spaces, events) hangs off.
type User struct {
	Uid         string
	DisplayName string
	Email       string
	PhotoUrl    string
	CreatedAt   time.Time
}

package space

import "time"

type Type string

const (
	TypePersonal Type = "personal"
	TypeShared   Type = "shared"
)

// Space is a collaboration container scoping a set of events and members.
type Space struct {
	Id          string
	Name        string
	Description string
	Type        Type
	OwnerUid    string
	CreatedAt   time.Time
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

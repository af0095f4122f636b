package entity

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleClient Role = "client"
	RoleCA     Role = "ca"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleCA, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Label() string {
	switch r {
	case RoleCA:
		return "Chartered Accountant"
	case RoleAdmin:
		return "Administrator"
	default:
		return "Client"
	}
}

// IsStaff is true for the roles that manage service requests.
func (r Role) IsStaff() bool {
	return r == RoleCA || r == RoleAdmin
}

type Profile struct {
	UserID    string    `json:"user_id" firestore:"userId"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Role      Role      `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

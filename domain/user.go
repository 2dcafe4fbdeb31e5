package domain

import "strings"

// UserRole is a user's system-wide role, distinct from per-project roles.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// User is the canonical user shape. Every inbound user-like record is
// normalized to this shape at the ingestion boundary before it reaches any
// other code.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Role         UserRole `json:"role,omitempty"`
	IsActive     bool     `json:"isActive,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
}

// DisplayName composes the user's full name.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user has the system admin role.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Initials returns the uppercase initials of the given names, used for
// avatar placeholders.
func Initials(firstName, lastName string) string {
	var b strings.Builder
	if firstName != "" {
		b.WriteString(strings.ToUpper(firstName[:1]))
	}
	if lastName != "" {
		b.WriteString(strings.ToUpper(lastName[:1]))
	}
	return b.String()
}

// NormalizeUser maps a loosely shaped user record to the canonical User.
// Records may carry the identifier under "userId" or "id" and the name
// either pre-composed under "userName" or split into first/last parts.
func NormalizeUser(raw map[string]any) User {
	u := User{}
	if v, ok := raw["id"].(string); ok && v != "" {
		u.ID = v
	} else if v, ok := raw["userId"].(string); ok {
		u.ID = v
	}
	if v, ok := raw["email"].(string); ok && v != "" {
		u.Email = v
	} else if v, ok := raw["userEmail"].(string); ok {
		u.Email = v
	}
	if v, ok := raw["firstName"].(string); ok {
		u.FirstName = v
	}
	if v, ok := raw["lastName"].(string); ok {
		u.LastName = v
	}
	if u.FirstName == "" && u.LastName == "" {
		if v, ok := raw["userName"].(string); ok {
			first, last, _ := strings.Cut(v, " ")
			u.FirstName = first
			u.LastName = last
		}
	}
	if v, ok := raw["profileImage"].(string); ok {
		u.ProfileImage = v
	}
	if v, ok := raw["role"].(string); ok {
		u.Role = UserRole(v)
	}
	return u
}

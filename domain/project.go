package domain

// DefaultProjectColor is assigned when a project is created without one.
const DefaultProjectColor = "#3B82F6"

// Project is a container for tasks with an owner and a member list.
// Exactly one member holds the OWNER role.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color,omitempty"`
	OwnerID     string          `json:"ownerId"`
	OwnerName   string          `json:"ownerName,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
	Members     []ProjectMember `json:"members,omitempty"`
	MemberCount int             `json:"memberCount"`
}

// ProjectMember is one user's membership in a project.
type ProjectMember struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	UserEmail string      `json:"userEmail,omitempty"`
	UserName  string      `json:"userName,omitempty"`
	Role      ProjectRole `json:"role"`
	JoinedAt  string      `json:"joinedAt,omitempty"`
}

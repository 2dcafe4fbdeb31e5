package domain

// ReactionType is a user's reaction to a comment. A user holds at most one
// reaction per comment; LIKE and DISLIKE are mutually exclusive.
type ReactionType string

const (
	ReactionLike    ReactionType = "LIKE"
	ReactionDislike ReactionType = "DISLIKE"
)

// Comment is a task comment together with its reaction counts and the
// requesting user's own reaction, empty when they have none.
type Comment struct {
	ID            string       `json:"id"`
	TaskID        string       `json:"taskId"`
	UserID        string       `json:"userId"`
	UserName      string       `json:"userName,omitempty"`
	UserEmail     string       `json:"userEmail,omitempty"`
	CommentText   string       `json:"commentText"`
	LikesCount    int          `json:"likesCount"`
	DislikesCount int          `json:"dislikesCount"`
	UserReaction  ReactionType `json:"userReaction,omitempty"`
	CreatedAt     string       `json:"createdAt,omitempty"`
	UpdatedAt     string       `json:"updatedAt,omitempty"`
}

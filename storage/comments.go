package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/0zturkSamet/task-manager/domain"
)

const commentColumns = `c.id, c.task_id, c.user_id,
	u.first_name || ' ' || u.last_name, u.email, c.text, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM comment_reactions r WHERE r.comment_id = c.id AND r.reaction = 'LIKE'),
	(SELECT COUNT(*) FROM comment_reactions r WHERE r.comment_id = c.id AND r.reaction = 'DISLIKE'),
	COALESCE((SELECT r.reaction FROM comment_reactions r WHERE r.comment_id = c.id AND r.user_id = ?), '')`

const commentFrom = " FROM comments c JOIN users u ON u.id = c.user_id "

func scanComment(row interface{ Scan(...any) error }) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.TaskID, &c.UserID, &c.UserName, &c.UserEmail,
		&c.CommentText, &c.CreatedAt, &c.UpdatedAt,
		&c.LikesCount, &c.DislikesCount, &c.UserReaction)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Comment{}, ErrNotFound
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

// AddComment attaches a comment to an active task.
func (s *Store) AddComment(ctx context.Context, taskID, userID, text string) (domain.Comment, error) {
	if ok, err := s.exists(ctx, "SELECT 1 FROM tasks WHERE id = ? AND is_active = 1", taskID); err != nil {
		return domain.Comment{}, err
	} else if !ok {
		return domain.Comment{}, ErrNotFound
	}

	id := uuid.NewString()
	now := s.timestamp()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO comments (id, task_id, user_id, text, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, taskID, userID, text, now, now)
	if err != nil {
		return domain.Comment{}, err
	}
	return s.CommentByID(ctx, id, userID)
}

// CommentByID returns a comment with reaction counts and viewerID's own
// reaction resolved.
func (s *Store) CommentByID(ctx context.Context, id, viewerID string) (domain.Comment, error) {
	return scanComment(s.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+commentFrom+"WHERE c.id = ?", viewerID, id))
}

// CommentsForTask lists a task's comments oldest first, with reaction counts
// and viewerID's own reaction on each.
func (s *Store) CommentsForTask(ctx context.Context, taskID, viewerID string) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+commentColumns+commentFrom+"WHERE c.task_id = ? ORDER BY c.created_at", viewerID, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// UpdateComment replaces a comment's text.
func (s *Store) UpdateComment(ctx context.Context, id, viewerID, text string) (domain.Comment, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE comments SET text = ?, updated_at = ? WHERE id = ?", text, s.timestamp(), id)
	if err != nil {
		return domain.Comment{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Comment{}, ErrNotFound
	}
	return s.CommentByID(ctx, id, viewerID)
}

// DeleteComment removes a comment and its reactions.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comment_reactions WHERE comment_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// React records userID's reaction to a comment. Reacting with the reaction
// the user already holds changes nothing; reacting with the opposite one
// replaces it. A user holds at most one reaction per comment.
func (s *Store) React(ctx context.Context, commentID, userID string, reaction domain.ReactionType) (domain.Comment, error) {
	if ok, err := s.exists(ctx, "SELECT 1 FROM comments WHERE id = ?", commentID); err != nil {
		return domain.Comment{}, err
	} else if !ok {
		return domain.Comment{}, ErrNotFound
	}

	var current domain.ReactionType
	err := s.db.QueryRowContext(ctx,
		"SELECT reaction FROM comment_reactions WHERE comment_id = ? AND user_id = ?",
		commentID, userID).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO comment_reactions (comment_id, user_id, reaction) VALUES (?, ?, ?)",
			commentID, userID, reaction)
	case err != nil:
		return domain.Comment{}, err
	case current != reaction:
		_, err = s.db.ExecContext(ctx,
			"UPDATE comment_reactions SET reaction = ? WHERE comment_id = ? AND user_id = ?",
			reaction, commentID, userID)
	default:
		// Same reaction again: idempotent, no write.
		err = nil
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return s.CommentByID(ctx, commentID, userID)
}

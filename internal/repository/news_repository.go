package repository

import (
	"context"
	"database/sql"
	"time"
)

type NewsRepo struct{ DB *sql.DB }

func NewNewsRepo(db *sql.DB) *NewsRepo { return &NewsRepo{DB: db} }

// NewsInfo is a published news item joined with its author's name.
type NewsInfo struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	PublishedDate   *time.Time `json:"published_date"`
	AuthorFirstName *string    `json:"author_first_name,omitempty"`
	AuthorLastName  *string    `json:"author_last_name,omitempty"`
}

// ListPublished returns published items, newest first, capped at limit.
func (r *NewsRepo) ListPublished(ctx context.Context, limit int) ([]NewsInfo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT n.id, n.title, n.content, n.published_date, u.first_name, u.last_name
		 FROM news n
		 LEFT JOIN users u ON n.author_id = u.id
		 WHERE n.is_published = ?
		 ORDER BY n.published_date DESC
		 LIMIT ?`,
		true, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []NewsInfo{}
	for rows.Next() {
		var ni NewsInfo
		if err := rows.Scan(&ni.ID, &ni.Title, &ni.Content, &ni.PublishedDate, &ni.AuthorFirstName, &ni.AuthorLastName); err != nil {
			return nil, err
		}
		items = append(items, ni)
	}
	return items, rows.Err()
}

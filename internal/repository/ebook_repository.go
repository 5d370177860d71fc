package repository

import (
	"context"
	"database/sql"
	"strings"
)

type EbookRepo struct{ DB *sql.DB }

func NewEbookRepo(db *sql.DB) *EbookRepo { return &EbookRepo{DB: db} }

// EbookInfo is an available ebook joined with its course name plus a flag
// for whether the requesting student has downloaded it before.
type EbookInfo struct {
	ID           uint64  `json:"id"`
	CourseID     uint64  `json:"course_id"`
	CourseName   string  `json:"course_name"`
	Title        string  `json:"title"`
	Author       *string `json:"author,omitempty"`
	FileURL      string  `json:"file_url"`
	IsDownloaded bool    `json:"is_downloaded"`
}

// ListForStudent returns available ebooks for the given courses with the
// student's download state.  An empty course list yields an empty slice.
func (r *EbookRepo) ListForStudent(ctx context.Context, studentID uint64, courseIDs []uint64) ([]EbookInfo, error) {
	if len(courseIDs) == 0 {
		return []EbookInfo{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(courseIDs)), ",")
	args := make([]interface{}, 0, len(courseIDs)+2)
	args = append(args, studentID)
	for _, id := range courseIDs {
		args = append(args, id)
	}
	args = append(args, true)
	rows, err := r.DB.QueryContext(ctx,
		`SELECT e.id, e.course_id, c.course_name, e.title, e.author, e.file_url,
		        (SELECT COUNT(*) FROM ebook_downloads WHERE ebook_id = e.id AND student_id = ?) AS is_downloaded
		 FROM ebooks e
		 JOIN courses c ON e.course_id = c.id
		 WHERE e.course_id IN (`+placeholders+`) AND e.is_available = ?
		 ORDER BY c.course_name, e.title`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ebooks := []EbookInfo{}
	for rows.Next() {
		var eb EbookInfo
		var downloads int
		if err := rows.Scan(&eb.ID, &eb.CourseID, &eb.CourseName, &eb.Title, &eb.Author, &eb.FileURL, &downloads); err != nil {
			return nil, err
		}
		eb.IsDownloaded = downloads > 0
		ebooks = append(ebooks, eb)
	}
	return ebooks, rows.Err()
}

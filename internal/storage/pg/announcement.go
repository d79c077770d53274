package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/starwave-dev/starboard/internal/domain"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
)

const uniqueViolation = "23505"

const announcementColumns = "id, title, slug, summary, content, author_display, category, tags, is_pinned, published_at"

// CreateAnnouncement inserts a record and returns the stored entity.
// A slug collision surfaces as UniquenessConflict so the service layer
// can retry with the next suffix; the unique index is the authoritative
// guard against concurrent creations picking the same slug.
func (s *Storage) CreateAnnouncement(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
	a := domain.Announcement{
		Title:         data.Title,
		Slug:          data.Slug,
		Summary:       data.Summary,
		Content:       data.Content,
		AuthorDisplay: data.AuthorDisplay,
		Category:      data.Category,
		Tags:          data.Tags,
		IsPinned:      data.IsPinned,
		PublishedAt:   data.PublishedAt,
	}
	if a.Tags == nil {
		a.Tags = domain.Tags{}
	}
	err := s.db.QueryRow(`
	INSERT INTO announcements(title, slug, summary, content, author_display, category, tags, is_pinned, published_at)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id`,
		a.Title, a.Slug, a.Summary, a.Content, a.AuthorDisplay, a.Category, a.Tags, a.IsPinned, a.PublishedAt,
	).Scan(&a.Id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, &internal_errors.UniquenessConflict{Constraint: pqErr.Constraint}
		}
		return nil, err
	}
	return &a, nil
}

// SlugTaken reports whether another announcement already owns the slug.
// excludeId lets an existing record be re-saved under its own slug.
func (s *Storage) SlugTaken(slug string, excludeId int64) (bool, error) {
	var taken bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM announcements WHERE slug = $1 AND id <> $2)",
		slug, excludeId,
	).Scan(&taken)
	return taken, err
}

// ListAnnouncements returns the filtered collection in pinned-first,
// newest-first order.
func (s *Storage) ListAnnouncements(filter domain.Filter) ([]domain.Announcement, error) {
	query, args := buildListQuery(filter)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.Id, &a.Title, &a.Slug, &a.Summary, &a.Content, &a.AuthorDisplay, &a.Category, &a.Tags, &a.IsPinned, &a.PublishedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (s *Storage) GetAnnouncementBySlug(slug string) (*domain.Announcement, error) {
	var a domain.Announcement
	err := s.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM announcements WHERE slug = $1", announcementColumns), slug,
	).Scan(&a.Id, &a.Title, &a.Slug, &a.Summary, &a.Content, &a.AuthorDisplay, &a.Category, &a.Tags, &a.IsPinned, &a.PublishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Announcement not found", StatusCode: 404}
		}
		return nil, err
	}
	return &a, nil
}

// DashboardStats covers the moderator dashboard: counts over the whole
// collection plus the most recent records.
func (s *Storage) DashboardStats(recentLimit int) (domain.Metrics, []domain.Announcement, error) {
	var m domain.Metrics
	err := s.db.QueryRow(
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE is_pinned) FROM announcements",
	).Scan(&m.Total, &m.Pinned)
	if err != nil {
		return m, nil, err
	}

	rows, err := s.db.Query(
		fmt.Sprintf("SELECT %s FROM announcements ORDER BY published_at DESC LIMIT $1", announcementColumns),
		recentLimit,
	)
	if err != nil {
		return m, nil, err
	}
	defer rows.Close()

	var recent []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.Id, &a.Title, &a.Slug, &a.Summary, &a.Content, &a.AuthorDisplay, &a.Category, &a.Tags, &a.IsPinned, &a.PublishedAt); err != nil {
			return m, nil, err
		}
		recent = append(recent, a)
	}
	return m, recent, rows.Err()
}

// buildListQuery composes the optional filters into one statement.
// Empty filter fields add no predicate, so any combination works.
func buildListQuery(filter domain.Filter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(announcementColumns)
	b.WriteString(" FROM announcements")

	var clauses []string
	var args []any
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			`(title ILIKE $%d OR summary ILIKE $%d OR content ILIKE $%d OR array_to_string(tags, ' ') ILIKE $%d)`,
			n, n, n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(clauses) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(clauses, " AND "))
	}
	b.WriteString(" ORDER BY is_pinned DESC, published_at DESC")
	return b.String(), args
}

// likePattern wraps a raw search term for ILIKE, escaping LIKE
// metacharacters so the term is matched as a literal substring.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

package pg

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/starwave-dev/starboard/internal/domain"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
)

func (s *Storage) SaveUser(user domain.User) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
	INSERT INTO users(email, display_name, pass_hash, is_admin)
	VALUES($1, $2, $3, $4)
	RETURNING id`,
		user.Email, user.DisplayName, user.PassHash, user.Admin,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "User already exists", StatusCode: 409}
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) User(email string) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(
		"SELECT id, email, display_name, pass_hash, is_admin, created FROM users WHERE email = $1", email,
	).Scan(&u.Id, &u.Email, &u.DisplayName, &u.PassHash, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, internal_errors.NotFound
		}
		return u, err
	}
	return u, nil
}

package user

import (
	"context"
	"database/sql"
	"errors"

	myErr "adboard/internal/types/errors"
	types "adboard/internal/types/user"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const selectUser = `
	SELECT u.id,
		   u.username,
		   u.first_name,
		   u.last_name,
		   u.role,
		   l.name,
		   u.password_hash
	FROM users u
	LEFT JOIN locations l ON l.id = u.location_id
	`

type UserDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewUserDBRepository(db *sql.DB, l *zap.SugaredLogger) *UserDBRepository {
	return &UserDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (ur *UserDBRepository) scanOne(row *sql.Row) (*User, error) {
	var (
		u        User
		location sql.NullString
	)

	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Role, &location, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при получении пользователя: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if location.Valid {
		u.Location = &location.String
	}

	return &u, nil
}

func (ur *UserDBRepository) CheckUser(ctx context.Context, username, password string) (*User, error) {
	u, err := ur.scanOne(ur.DB.QueryRowContext(ctx, selectUser+"WHERE u.username = $1", username))
	if err != nil {
		return nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, myErr.ErrBadPassword
	}

	return u, nil
}

func (ur *UserDBRepository) CreateUser(ctx context.Context, form types.CreateUser) (*User, error) {
	var existingID int64
	err := ur.DB.QueryRowContext(ctx, "SELECT id FROM users WHERE username = $1", form.Username).Scan(&existingID)
	switch {
	case err == nil:
		return nil, myErr.ErrAlreadyExists
	case !errors.Is(err, sql.ErrNoRows):
		ur.Logger.Warnf("Ошибка при проверке пользователя: %v", err)
		return nil, myErr.ErrDBInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, myErr.ErrPasswordTooLong
	}
	if err != nil {
		ur.Logger.Errorf("Failed to hash password: %v", err)
		return nil, err
	}

	query := `
	INSERT INTO users (username, first_name, last_name, role, location_id, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	var id int64
	err = ur.DB.QueryRowContext(
		ctx,
		query,
		form.Username,
		form.FirstName,
		form.LastName,
		RoleMember,
		form.LocationID,
		string(hash),
	).Scan(&id)
	if err != nil {
		return nil, ur.insertError(err)
	}

	return ur.Info(ctx, id)
}

// insertError переводит нарушения ограничений в доменные ошибки.
// Проверка имени выше не защищает от гонки двух регистраций, ее ловит UNIQUE
func (ur *UserDBRepository) insertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return myErr.ErrAlreadyExists
		case "foreign_key_violation":
			return myErr.ErrLocationNotFound
		}
	}

	ur.Logger.Warnf("Ошибка при создании пользователя: %v", err)
	return myErr.ErrDBInternal
}

func (ur *UserDBRepository) Info(ctx context.Context, userID int64) (*User, error) {
	return ur.scanOne(ur.DB.QueryRowContext(ctx, selectUser+"WHERE u.id = $1", userID))
}

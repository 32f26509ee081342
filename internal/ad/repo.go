package ad

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	types "adboard/internal/types/ad"
	myErr "adboard/internal/types/errors"

	"go.uber.org/zap"
)

const (
	adJoins = `
	FROM ads a
	JOIN users u ON u.id = a.author_id
	JOIN categories c ON c.id = a.category_id
	LEFT JOIN locations l ON l.id = u.location_id`

	selectAd = `
	SELECT a.id, a.author_id, u.username, a.name, a.price, a.description,
		a.is_published, a.image, a.category_id, c.name` + adJoins

	countAd = `SELECT COUNT(*)` + adJoins

	listOrder = " ORDER BY a.price DESC, a.id"
)

// queryRower - общее у *sql.DB и *sql.Tx
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type scanner interface {
	Scan(dest ...interface{}) error
}

type AdDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewAdDBRepository(db *sql.DB, l *zap.SugaredLogger) *AdDBRepository {
	return &AdDBRepository{
		DB:     db,
		Logger: l,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE, чтобы подстрока искалась буквально
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildFilter собирает WHERE по фильтру, плейсхолдеры нумеруются с $1
func buildFilter(f types.Filter) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}
	argID := 1

	// Категории объединяются через OR, IN делает то же самое
	if len(f.CategoryIDs) > 0 {
		placeholders := make([]string, 0, len(f.CategoryIDs))
		for _, id := range f.CategoryIDs {
			placeholders = append(placeholders, "$"+strconv.Itoa(argID))
			args = append(args, id)
			argID++
		}
		conds = append(conds, "a.category_id IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.Text != "" {
		conds = append(conds, "a.name ILIKE $"+strconv.Itoa(argID))
		args = append(args, "%"+escapeLike(f.Text)+"%")
		argID++
	}
	if f.Location != "" {
		conds = append(conds, "l.name ILIKE $"+strconv.Itoa(argID))
		args = append(args, "%"+escapeLike(f.Location)+"%")
		argID++
	}
	if f.PriceFrom != nil {
		conds = append(conds, "a.price >= $"+strconv.Itoa(argID))
		args = append(args, *f.PriceFrom)
		argID++
	}
	if f.PriceTo != nil {
		conds = append(conds, "a.price <= $"+strconv.Itoa(argID))
		args = append(args, *f.PriceTo)
	}

	if len(conds) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanAd(s scanner) (*Ad, error) {
	var (
		a     Ad
		image sql.NullString
	)

	err := s.Scan(
		&a.ID,
		&a.AuthorID,
		&a.Author,
		&a.Name,
		&a.Price,
		&a.Description,
		&a.IsPublished,
		&image,
		&a.CategoryID,
		&a.Category,
	)
	if err != nil {
		return nil, err
	}

	if image.Valid && image.String != "" {
		a.Image = &image.String
	}

	return &a, nil
}

func (ar *AdDBRepository) List(ctx context.Context, f types.Filter) ([]Ad, int, error) {
	where, args := buildFilter(f)

	var total int
	if err := ar.DB.QueryRowContext(ctx, countAd+where, args...).Scan(&total); err != nil {
		ar.Logger.Errorf("Error counting ads: %v", err)
		return nil, 0, myErr.ErrDBInternal
	}

	query := selectAd + where + listOrder
	if f.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := ar.DB.QueryContext(ctx, query, args...)
	if err != nil {
		ar.Logger.Errorf("Error listing ads: %v", err)
		return nil, 0, myErr.ErrDBInternal
	}
	defer rows.Close()

	ads := make([]Ad, 0)
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			ar.Logger.Errorf("Error scanning ad: %v", err)
			return nil, 0, myErr.ErrDBInternal
		}
		ads = append(ads, *a)
	}

	if err := rows.Err(); err != nil {
		ar.Logger.Errorf("Error iterating ads: %v", err)
		return nil, 0, myErr.ErrDBInternal
	}

	return ads, total, nil
}

func (ar *AdDBRepository) GetByID(ctx context.Context, id int64) (*Ad, error) {
	return ar.getByID(ctx, ar.DB, id)
}

func (ar *AdDBRepository) getByID(ctx context.Context, q queryRower, id int64) (*Ad, error) {
	a, err := scanAd(q.QueryRowContext(ctx, selectAd+" WHERE a.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ar.Logger.Errorf("Error getting ad %d: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	return a, nil
}

// checkExists возвращает notFound, если query не вернул ни одной строки
func (ar *AdDBRepository) checkExists(ctx context.Context, q queryRower, query string, id int64, notFound error) error {
	var one int
	err := q.QueryRowContext(ctx, query, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		ar.Logger.Errorf("Error checking existence (%s, %d): %v", query, id, err)
		return myErr.ErrDBInternal
	}

	return nil
}

func (ar *AdDBRepository) Create(ctx context.Context, a types.CreateAd) (*Ad, error) {
	tx, err := ar.DB.BeginTx(ctx, nil)
	if err != nil {
		ar.Logger.Errorf("Error starting transaction: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	// Сначала проверяем автора и категорию, чтобы не оставлять объявлений без них
	if err = ar.checkExists(ctx, tx, "SELECT 1 FROM users WHERE id = $1", a.AuthorID, myErr.ErrAuthorNotFound); err != nil {
		return nil, err
	}
	if err = ar.checkExists(ctx, tx, "SELECT 1 FROM categories WHERE id = $1", a.CategoryID, myErr.ErrCategoryNotFound); err != nil {
		return nil, err
	}

	query := `
	INSERT INTO ads (
		name,
		price,
		description,
		is_published,
		author_id,
		category_id
	) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	var id int64
	err = tx.QueryRowContext(
		ctx,
		query,
		a.Name,
		a.Price,
		a.Description,
		a.IsPublished,
		a.AuthorID,
		a.CategoryID,
	).Scan(&id)
	if err != nil {
		ar.Logger.Errorf("Error creating ad: %v", err)
		return nil, myErr.ErrDBInternal
	}

	created, err := ar.getByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		ar.Logger.Errorf("Error committing ad %d: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	return created, nil
}

func (ar *AdDBRepository) Update(ctx context.Context, id int64, u types.UpdateAd) (*Ad, error) {
	tx, err := ar.DB.BeginTx(ctx, nil)
	if err != nil {
		ar.Logger.Errorf("Error starting transaction: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	if err = ar.checkExists(ctx, tx, "SELECT 1 FROM ads WHERE id = $1 FOR UPDATE", id, myErr.ErrNotFound); err != nil {
		return nil, err
	}

	if u.CategoryID != nil {
		err = ar.checkExists(ctx, tx, "SELECT 1 FROM categories WHERE id = $1", *u.CategoryID, myErr.ErrCategoryNotFound)
		if err != nil {
			return nil, err
		}
	}

	fields := []string{}
	args := []interface{}{}
	argID := 1

	// Динамически добавляем поля в обновление
	if u.Name != nil {
		fields = append(fields, "name = $"+strconv.Itoa(argID))
		args = append(args, *u.Name)
		argID++
	}
	if u.Price != nil {
		fields = append(fields, "price = $"+strconv.Itoa(argID))
		args = append(args, *u.Price)
		argID++
	}
	if u.Description != nil {
		fields = append(fields, "description = $"+strconv.Itoa(argID))
		args = append(args, *u.Description)
		argID++
	}
	if u.IsPublished != nil {
		fields = append(fields, "is_published = $"+strconv.Itoa(argID))
		args = append(args, *u.IsPublished)
		argID++
	}
	if u.CategoryID != nil {
		fields = append(fields, "category_id = $"+strconv.Itoa(argID))
		args = append(args, *u.CategoryID)
		argID++
	}
	// после любого изменения объявление переиндексируется
	fields = append(fields, "indexed = FALSE")

	query := "UPDATE ads SET " + strings.Join(fields, ", ") + " WHERE id = $" + strconv.Itoa(argID) // nolint:gosec
	args = append(args, id)

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		ar.Logger.Errorf("Error updating ad %d: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	updated, err := ar.getByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		ar.Logger.Errorf("Error committing ad %d: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	return updated, nil
}

func (ar *AdDBRepository) SetImage(ctx context.Context, id int64, imageURL string) (*Ad, error) {
	res, err := ar.DB.ExecContext(ctx, "UPDATE ads SET image = $1 WHERE id = $2", imageURL, id)
	if err != nil {
		ar.Logger.Errorf("Error setting image for ad %d: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		ar.Logger.Warnf("Failed to get rows affected: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if rowsAffected == 0 {
		return nil, myErr.ErrNotFound
	}

	return ar.GetByID(ctx, id)
}

func (ar *AdDBRepository) Delete(ctx context.Context, id int64) error {
	res, err := ar.DB.ExecContext(ctx, "DELETE FROM ads WHERE id = $1", id)
	if err != nil {
		ar.Logger.Errorf("Error deleting ad %d: %v", id, err)
		return myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		ar.Logger.Warnf("Failed to get rows affected: %v", err)
		return myErr.ErrDBInternal
	}
	if rowsAffected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"restaurant-ordering/menu-svc/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func conflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

const menuItemColumns = `id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), category, featured, in_stock, created_at, updated_at`

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.ImageURL,
		&item.Category, &item.Featured, &item.InStock, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (name, description, price, image_url, category, featured, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.Price, item.ImageURL, item.Category, item.Featured, item.InStock,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}
	if filter.InStockOnly {
		where = append(where, "in_stock")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	query := "SELECT " + menuItemColumns + " FROM menu_items"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY category, name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	updated, err := scanMenuItem(r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name=$1, description=$2, price=$3, category=$4, featured=$5, in_stock=$6,
		    image_url=COALESCE(NULLIF($7, ''), image_url), updated_at=NOW()
		WHERE id=$8
		RETURNING `+menuItemColumns,
		item.Name, item.Description, item.Price, item.Category, item.Featured, item.InStock, item.ImageURL, item.ID))
	if err != nil {
		return notFound(err)
	}
	*item = *updated
	return nil
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET image_url=$1, updated_at=NOW() WHERE id=$2", imageURL, id)
	return err
}

func (r *PostgresRepository) ToggleFeatured(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx,
		"UPDATE menu_items SET featured = NOT featured, updated_at=NOW() WHERE id=$1 RETURNING "+menuItemColumns, id))
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (r *PostgresRepository) ToggleInStock(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx,
		"UPDATE menu_items SET in_stock = NOT in_stock, updated_at=NOW() WHERE id=$1 RETURNING "+menuItemColumns, id))
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, cat *domain.Category) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO categories (name, display_name, order_index) VALUES ($1, $2, $3) RETURNING id",
		cat.Name, cat.DisplayName, cat.OrderIndex).Scan(&cat.ID)
	return conflict(err)
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, display_name, order_index FROM categories ORDER BY order_index, display_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayName, &c.OrderIndex); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// UpdateCategory carries a slug rename over to the menu items that reference it.
func (r *PostgresRepository) UpdateCategory(ctx context.Context, cat *domain.Category) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var oldName string
	if err := tx.QueryRowContext(ctx, "SELECT name FROM categories WHERE id = $1 FOR UPDATE", cat.ID).Scan(&oldName); err != nil {
		return notFound(err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE categories SET name=$1, display_name=$2, order_index=$3 WHERE id=$4",
		cat.Name, cat.DisplayName, cat.OrderIndex, cat.ID); err != nil {
		return conflict(err)
	}

	if oldName != cat.Name {
		if _, err := tx.ExecContext(ctx,
			"UPDATE menu_items SET category=$1, updated_at=NOW() WHERE category=$2", cat.Name, oldName); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CountItemsInCategory(ctx context.Context, id int) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(m.id)
		FROM categories c
		JOIN menu_items m ON m.category = c.name
		WHERE c.id = $1`, id).Scan(&n)
	return n, err
}

func (r *PostgresRepository) ReorderCategories(ctx context.Context, ids []int) error {
	arr := make(pq.Int64Array, len(ids))
	for i, id := range ids {
		arr[i] = int64(id)
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE categories AS c
		SET order_index = o.idx - 1
		FROM unnest($1::int[]) WITH ORDINALITY AS o(id, idx)
		WHERE c.id = o.id`, arr)
	return err
}

func (r *PostgresRepository) CreateImage(ctx context.Context, img *domain.GalleryImage) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO gallery (title, url, featured) VALUES ($1, $2, $3) RETURNING id, created_at",
		img.Title, img.URL, img.Featured).Scan(&img.ID, &img.CreatedAt)
}

func (r *PostgresRepository) ListImages(ctx context.Context, featuredOnly bool) ([]domain.GalleryImage, error) {
	query := "SELECT id, title, url, featured, created_at FROM gallery"
	if featuredOnly {
		query += " WHERE featured"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.GalleryImage
	for rows.Next() {
		var img domain.GalleryImage
		if err := rows.Scan(&img.ID, &img.Title, &img.URL, &img.Featured, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *PostgresRepository) UpdateImage(ctx context.Context, img *domain.GalleryImage) error {
	err := r.DB.QueryRowContext(ctx,
		"UPDATE gallery SET title=$1, url=$2, featured=$3 WHERE id=$4 RETURNING created_at",
		img.Title, img.URL, img.Featured, img.ID).Scan(&img.CreatedAt)
	return notFound(err)
}

func (r *PostgresRepository) DeleteImage(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM gallery WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ToggleImageFeatured(ctx context.Context, id int) (*domain.GalleryImage, error) {
	var img domain.GalleryImage
	err := r.DB.QueryRowContext(ctx,
		"UPDATE gallery SET featured = NOT featured WHERE id=$1 RETURNING id, title, url, featured, created_at", id).
		Scan(&img.ID, &img.Title, &img.URL, &img.Featured, &img.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &img, nil
}

func (r *PostgresRepository) CreateTeamMember(ctx context.Context, m *domain.TeamMember) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO team_members (name, role, bio, image_url, order_index) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		m.Name, m.Role, m.Bio, m.ImageURL, m.OrderIndex).Scan(&m.ID)
}

func (r *PostgresRepository) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, role, bio, image_url, order_index FROM team_members ORDER BY order_index, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.ImageURL, &m.OrderIndex); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PostgresRepository) UpdateTeamMember(ctx context.Context, m *domain.TeamMember) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE team_members SET name=$1, role=$2, bio=$3, image_url=$4, order_index=$5 WHERE id=$6",
		m.Name, m.Role, m.Bio, m.ImageURL, m.OrderIndex, m.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTeamMember(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM team_members WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const settingsColumns = "id, name, address, phone, email, opening_hours, delivery_fee, updated_at"

func scanSettings(row rowScanner) (*domain.Settings, error) {
	var s domain.Settings
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Email, &s.OpeningHours, &s.DeliveryFee, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	s, err := scanSettings(r.DB.QueryRowContext(ctx, "SELECT "+settingsColumns+" FROM settings WHERE id = 1"))
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Settings{ID: 1}, nil
	}
	return s, err
}

// UpdateSettings upserts the singleton row. NULL parameters leave the
// stored column untouched.
func (r *PostgresRepository) UpdateSettings(ctx context.Context, u domain.SettingsUpdate) (*domain.Settings, error) {
	return scanSettings(r.DB.QueryRowContext(ctx, `
		INSERT INTO settings (id, name, address, phone, email, opening_hours, delivery_fee, updated_at)
		VALUES (1, COALESCE($1::text, ''), COALESCE($2::text, ''), COALESCE($3::text, ''),
		        COALESCE($4::text, ''), COALESCE($5::text, ''), COALESCE($6::numeric, 0), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name          = COALESCE($1::text, settings.name),
			address       = COALESCE($2::text, settings.address),
			phone         = COALESCE($3::text, settings.phone),
			email         = COALESCE($4::text, settings.email),
			opening_hours = COALESCE($5::text, settings.opening_hours),
			delivery_fee  = COALESCE($6::numeric, settings.delivery_fee),
			updated_at    = NOW()
		RETURNING `+settingsColumns,
		u.Name, u.Address, u.Phone, u.Email, u.OpeningHours, u.DeliveryFee))
}

package repositories

import (
	"context"
	"errors"
	"time"

	"dental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrStockItemNotFound is returned when no item matches the name.
	ErrStockItemNotFound = errors.New("stock item not found")
	// ErrStockItemExists is returned on a duplicate item name for the doctor.
	ErrStockItemExists = errors.New("stock item already exists")
)

// StockRepository stores clinic inventory. Item names are lowercased before
// storage and unique per doctor.
type StockRepository struct {
	DB *pgxpool.Pool
}

func NewStockRepository(db *pgxpool.Pool) *StockRepository {
	return &StockRepository{DB: db}
}

func (r *StockRepository) Create(ctx context.Context, item *models.StockItem) error {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM stock_items WHERE doctor_id=$1 AND name=$2)`,
		item.DoctorID, item.Name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrStockItemExists
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO stock_items(doctor_id, name, quantity, expiry_date)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		item.DoctorID, item.Name, item.Quantity, item.ExpiryDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *StockRepository) GetByName(ctx context.Context, doctorID int, name string) (*models.StockItem, error) {
	var item models.StockItem
	err := r.DB.QueryRow(ctx,
		`SELECT id, doctor_id, name, quantity, expiry_date, created_at, updated_at
         FROM stock_items WHERE doctor_id=$1 AND name=$2`, doctorID, name,
	).Scan(&item.ID, &item.DoctorID, &item.Name, &item.Quantity,
		&item.ExpiryDate, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStockItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *StockRepository) List(ctx context.Context, doctorID int) ([]*models.StockItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, doctor_id, name, quantity, expiry_date, created_at, updated_at
         FROM stock_items WHERE doctor_id=$1 ORDER BY name`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.StockItem
	for rows.Next() {
		var item models.StockItem
		if err := rows.Scan(&item.ID, &item.DoctorID, &item.Name, &item.Quantity,
			&item.ExpiryDate, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *StockRepository) Update(ctx context.Context, doctorID int, name string, quantity int, expiry time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE stock_items SET quantity=$1, expiry_date=$2, updated_at=CURRENT_TIMESTAMP
         WHERE doctor_id=$3 AND name=$4`, quantity, expiry, doctorID, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStockItemNotFound
	}
	return nil
}

// Consume decrements quantity, clamping at zero.
func (r *StockRepository) Consume(ctx context.Context, doctorID int, name string, quantity int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE stock_items
         SET quantity=GREATEST(quantity-$1, 0), updated_at=CURRENT_TIMESTAMP
         WHERE doctor_id=$2 AND name=$3`, quantity, doctorID, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStockItemNotFound
	}
	return nil
}

func (r *StockRepository) Delete(ctx context.Context, doctorID int, name string) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM stock_items WHERE doctor_id=$1 AND name=$2`, doctorID, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStockItemNotFound
	}
	return nil
}

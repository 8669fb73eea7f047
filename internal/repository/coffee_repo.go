package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brewlog/internal/models"
)

type CoffeeSQLite struct {
	db *sql.DB
}

func NewCoffeeSQLite(db *sql.DB) *CoffeeSQLite {
	return &CoffeeSQLite{db: db}
}

var _ CoffeeRepo = (*CoffeeSQLite)(nil)

const (
	insertBeanSQL = `INSERT INTO coffee_beans (user_id, name, roaster, origin, process, roast_level) VALUES (?, ?, ?, ?, ?, ?)`
	selectBeanSQL = `SELECT id, user_id, name, roaster, origin, process, roast_level FROM coffee_beans WHERE user_id = ? ORDER BY name`
	updateBeanSQL = `UPDATE coffee_beans SET name = ?, roaster = ?, origin = ?, process = ?, roast_level = ? WHERE id = ? AND user_id = ?`
	deleteBeanSQL = `DELETE FROM coffee_beans WHERE id = ? AND user_id = ?`

	insertBatchSQL = `
		INSERT INTO coffee_batches (coffee_bean_id, price, roast_date, weight_g, current_weight_g, purchase_date, active)
		SELECT id, ?, ?, ?, ?, ?, ? FROM coffee_beans WHERE id = ? AND user_id = ?
	`
	selectBatchesSQL = `
		SELECT cb.id, cb.coffee_bean_id, cb.price, cb.roast_date, cb.weight_g, cb.current_weight_g, cb.purchase_date, cb.active
		FROM coffee_batches cb
		JOIN coffee_beans b ON b.id = cb.coffee_bean_id
		WHERE b.user_id = ? AND cb.coffee_bean_id = ?
		ORDER BY cb.id DESC
	`
	updateBatchSQL = `
		UPDATE coffee_batches SET price = ?, roast_date = ?, weight_g = ?, current_weight_g = ?, purchase_date = ?, active = ?
		WHERE id = ? AND coffee_bean_id IN (SELECT id FROM coffee_beans WHERE user_id = ?)
	`
	deleteBatchSQL = `
		DELETE FROM coffee_batches
		WHERE id = ? AND coffee_bean_id IN (SELECT id FROM coffee_beans WHERE user_id = ?)
	`
	// Single atomic statement: never read-modify-write the weight in
	// application code, so concurrent consumes cannot lose updates.
	consumeBatchSQL = `
		UPDATE coffee_batches SET current_weight_g = MAX(0, current_weight_g - ?)
		WHERE id = ? AND coffee_bean_id IN (SELECT id FROM coffee_beans WHERE user_id = ?)
	`
	selectBatchWeightSQL = `
		SELECT cb.current_weight_g
		FROM coffee_batches cb
		JOIN coffee_beans b ON b.id = cb.coffee_bean_id
		WHERE cb.id = ? AND b.user_id = ?
	`
)

// nullableTime maps a nil time pointer to SQL NULL.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func (r *CoffeeSQLite) CreateBean(ctx context.Context, b models.CoffeeBean) (int, error) {
	res, err := r.db.ExecContext(ctx, insertBeanSQL,
		b.UserID, b.Name, b.Roaster, b.Origin, b.Process, b.RoastLevel)
	if err != nil {
		return 0, fmt.Errorf("insert bean: %w", err)
	}
	return lastInsertID(res, "insert bean")
}

func (r *CoffeeSQLite) ListBeans(ctx context.Context, userID int) ([]models.CoffeeBean, error) {
	rows, err := r.db.QueryContext(ctx, selectBeanSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CoffeeBean, 0, 16)
	for rows.Next() {
		var b models.CoffeeBean
		var roaster, origin, process, roast sql.NullString
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &roaster, &origin, &process, &roast); err != nil {
			return nil, err
		}
		b.Roaster, b.Origin, b.Process, b.RoastLevel = roaster.String, origin.String, process.String, roast.String
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *CoffeeSQLite) UpdateBean(ctx context.Context, b models.CoffeeBean) error {
	res, err := r.db.ExecContext(ctx, updateBeanSQL,
		b.Name, b.Roaster, b.Origin, b.Process, b.RoastLevel, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update bean id=%d: %w", b.ID, err)
	}
	return requireAffected(res, "update bean")
}

func (r *CoffeeSQLite) DeleteBean(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteBeanSQL, id, userID)
	if err != nil {
		return fmt.Errorf("delete bean id=%d: %w", id, err)
	}
	return requireAffected(res, "delete bean")
}

// CreateBatch inserts a batch only when the target bean belongs to the
// user; the ownership check and insert are one statement.
func (r *CoffeeSQLite) CreateBatch(ctx context.Context, userID int, b models.CoffeeBatch) (int, error) {
	current := b.CurrentWeightG
	if current == 0 {
		current = b.WeightG // fresh bag starts full
	}
	res, err := r.db.ExecContext(ctx, insertBatchSQL,
		b.Price, nullableTime(b.RoastDate), b.WeightG, current, nullableTime(b.PurchaseDate), b.Active,
		b.CoffeeBeanID, userID)
	if err != nil {
		return 0, fmt.Errorf("insert batch for bean id=%d: %w", b.CoffeeBeanID, err)
	}
	if err := requireAffected(res, "insert batch"); err != nil {
		return 0, err
	}
	return lastInsertID(res, "insert batch")
}

func (r *CoffeeSQLite) ListBatches(ctx context.Context, userID, beanID int) ([]models.CoffeeBatch, error) {
	rows, err := r.db.QueryContext(ctx, selectBatchesSQL, userID, beanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CoffeeBatch, 0, 8)
	for rows.Next() {
		var b models.CoffeeBatch
		var price sql.NullFloat64
		var roastDate, purchaseDate sql.NullTime
		if err := rows.Scan(&b.ID, &b.CoffeeBeanID, &price, &roastDate, &b.WeightG, &b.CurrentWeightG, &purchaseDate, &b.Active); err != nil {
			return nil, err
		}
		b.Price = price.Float64
		if roastDate.Valid {
			t := roastDate.Time.UTC()
			b.RoastDate = &t
		}
		if purchaseDate.Valid {
			t := purchaseDate.Time.UTC()
			b.PurchaseDate = &t
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *CoffeeSQLite) UpdateBatch(ctx context.Context, userID int, b models.CoffeeBatch) error {
	res, err := r.db.ExecContext(ctx, updateBatchSQL,
		b.Price, nullableTime(b.RoastDate), b.WeightG, b.CurrentWeightG, nullableTime(b.PurchaseDate), b.Active,
		b.ID, userID)
	if err != nil {
		return fmt.Errorf("update batch id=%d: %w", b.ID, err)
	}
	return requireAffected(res, "update batch")
}

func (r *CoffeeSQLite) DeleteBatch(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteBatchSQL, id, userID)
	if err != nil {
		return fmt.Errorf("delete batch id=%d: %w", id, err)
	}
	return requireAffected(res, "delete batch")
}

// ConsumeBatch atomically decrements remaining weight, clamped at
// zero, and returns the post-decrement weight.
func (r *CoffeeSQLite) ConsumeBatch(ctx context.Context, userID, id int, amountG float64) (float64, error) {
	res, err := r.db.ExecContext(ctx, consumeBatchSQL, amountG, id, userID)
	if err != nil {
		return 0, fmt.Errorf("consume batch id=%d: %w", id, err)
	}
	if err := requireAffected(res, "consume batch"); err != nil {
		return 0, err
	}

	var remaining float64
	err = r.db.QueryRowContext(ctx, selectBatchWeightSQL, id, userID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("read batch id=%d weight: %w", id, err)
	}
	return remaining, nil
}

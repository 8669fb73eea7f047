package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"brewlog/internal/models"
)

type BrewSQLite struct {
	db *sql.DB
}

func NewBrewSQLite(db *sql.DB) *BrewSQLite {
	return &BrewSQLite{db: db}
}

var _ BrewRepo = (*BrewSQLite)(nil)

const (
	insertBrewSQL = `
		INSERT INTO brews (user_id, coffee_bean_id, coffee_batch_id, grinder_id, brewer_id, server_id, recipe_id,
			dose_g, grind_size, water_g, yield_g, temp_c, brew_time,
			tds, extraction_yield, rating, comment, favorite, template_notes, brewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectBrewColumns = `id, user_id, coffee_bean_id, coffee_batch_id, grinder_id, brewer_id, server_id, recipe_id,
		dose_g, grind_size, water_g, yield_g, temp_c, brew_time,
		tds, extraction_yield, rating, comment, photo_path, favorite, template_notes, brewed_at`

	updateBrewEvalSQL = `
		UPDATE brews SET rating = ?, comment = ?, tds = ?, extraction_yield = ?
		WHERE id = ? AND user_id = ?
	`
	setBrewPhotoSQL = `UPDATE brews SET photo_path = ? WHERE id = ? AND user_id = ?`
	favoriteBrewSQL = `UPDATE brews SET favorite = ? WHERE id = ? AND user_id = ?`
	deleteBrewSQL   = `DELETE FROM brews WHERE id = ? AND user_id = ?`
)

// marshalNotes converts template notes to a JSON string, NULL when empty.
func marshalNotes(notes map[string]string) (any, error) {
	if len(notes) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("marshal template notes: %w", err)
	}
	return string(b), nil
}

// unmarshalNotes parses a JSON string into the notes map.
func unmarshalNotes(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	var notes map[string]string
	if err := json.Unmarshal([]byte(s), &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Create inserts a finalized brew payload. BrewedAt defaults to now.
func (r *BrewSQLite) Create(ctx context.Context, b models.Brew) (int, error) {
	notes, err := marshalNotes(b.TemplateNotes)
	if err != nil {
		return 0, err
	}

	brewedAt := b.BrewedAt
	if brewedAt.IsZero() {
		brewedAt = time.Now().UTC()
	} else {
		brewedAt = brewedAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertBrewSQL,
		b.UserID, b.CoffeeBeanID, nullableID(b.CoffeeBatchID), b.GrinderID, b.BrewerID,
		nullableID(b.ServerID), nullableID(b.RecipeID),
		b.DoseG, b.GrindSize, b.WaterG, b.YieldG, b.TempC, b.BrewTime,
		b.TDS, b.ExtractionYield, b.Rating, b.Comment, b.Favorite, notes, brewedAt)
	if err != nil {
		return 0, fmt.Errorf("insert brew: %w", err)
	}
	return lastInsertID(res, "insert brew")
}

// List returns the user's brews filtered by [from, to] (inclusive),
// bean and favorite flag, newest first.
func (r *BrewSQLite) List(ctx context.Context, userID int, from, to time.Time, beanID int, favoriteOnly bool) ([]models.Brew, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if !from.IsZero() {
		conds = append(conds, "brewed_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "brewed_at <= ?")
		args = append(args, to.UTC())
	}
	if beanID > 0 {
		conds = append(conds, "coffee_bean_id = ?")
		args = append(args, beanID)
	}
	if favoriteOnly {
		conds = append(conds, "favorite = 1")
	}

	q := `SELECT ` + selectBrewColumns + ` FROM brews WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY brewed_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Brew, 0, 32)
	for rows.Next() {
		b, err := scanBrew(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BrewSQLite) GetByID(ctx context.Context, userID, id int) (models.Brew, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectBrewColumns+` FROM brews WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBrew(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Brew{}, ErrNotFound
		}
		return models.Brew{}, err
	}
	return b, nil
}

// UpdateEvaluation touches only the post-brew evaluation fields; the
// physical parameters copied at creation stay immutable.
func (r *BrewSQLite) UpdateEvaluation(ctx context.Context, userID, id, rating int, comment string, tds, extractionYield *float64) error {
	res, err := r.db.ExecContext(ctx, updateBrewEvalSQL,
		rating, comment, tds, extractionYield, id, userID)
	if err != nil {
		return fmt.Errorf("update brew id=%d evaluation: %w", id, err)
	}
	return requireAffected(res, "update brew evaluation")
}

func (r *BrewSQLite) SetPhoto(ctx context.Context, userID, id int, path string) error {
	res, err := r.db.ExecContext(ctx, setBrewPhotoSQL, path, id, userID)
	if err != nil {
		return fmt.Errorf("set brew id=%d photo: %w", id, err)
	}
	return requireAffected(res, "set brew photo")
}

func (r *BrewSQLite) SetFavorite(ctx context.Context, userID, id int, favorite bool) error {
	res, err := r.db.ExecContext(ctx, favoriteBrewSQL, favorite, id, userID)
	if err != nil {
		return fmt.Errorf("favorite brew id=%d: %w", id, err)
	}
	return requireAffected(res, "favorite brew")
}

func (r *BrewSQLite) Delete(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteBrewSQL, id, userID)
	if err != nil {
		return fmt.Errorf("delete brew id=%d: %w", id, err)
	}
	return requireAffected(res, "delete brew")
}

func scanBrew(row rowScanner) (models.Brew, error) {
	var b models.Brew
	var batchID, serverID, recipeID, rating sql.NullInt64
	var grind sql.NullFloat64
	var tds, ey sql.NullFloat64
	var comment, photo, notesStr sql.NullString

	if err := row.Scan(&b.ID, &b.UserID, &b.CoffeeBeanID, &batchID, &b.GrinderID, &b.BrewerID, &serverID, &recipeID,
		&b.DoseG, &grind, &b.WaterG, &b.YieldG, &b.TempC, &b.BrewTime,
		&tds, &ey, &rating, &comment, &photo, &b.Favorite, &notesStr, &b.BrewedAt); err != nil {
		return models.Brew{}, err
	}

	b.CoffeeBatchID = int(batchID.Int64)
	b.ServerID = int(serverID.Int64)
	b.RecipeID = int(recipeID.Int64)
	b.GrindSize = grind.Float64
	b.Rating = int(rating.Int64)
	b.Comment = comment.String
	b.PhotoPath = photo.String
	if tds.Valid {
		v := tds.Float64
		b.TDS = &v
	}
	if ey.Valid {
		v := ey.Float64
		b.ExtractionYield = &v
	}
	notes, err := unmarshalNotes(notesStr.String)
	if err != nil {
		return models.Brew{}, err
	}
	b.TemplateNotes = notes
	b.BrewedAt = b.BrewedAt.UTC()
	return b, nil
}

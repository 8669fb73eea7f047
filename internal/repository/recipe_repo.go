package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brewlog/internal/models"
)

type RecipeSQLite struct {
	db *sql.DB
}

func NewRecipeSQLite(db *sql.DB) *RecipeSQLite {
	return &RecipeSQLite{db: db}
}

var _ RecipeRepo = (*RecipeSQLite)(nil)

const (
	insertRecipeSQL = `
		INSERT INTO recipes (user_id, name, grinder_id, brewer_id, ratio, dose_g, grind_size, water_g, yield_g, temp_c, brew_time, favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectRecipeColumns = `id, user_id, name, grinder_id, brewer_id, ratio, dose_g, grind_size, water_g, yield_g, temp_c, brew_time, favorite`

	updateRecipeSQL = `
		UPDATE recipes SET name = ?, grinder_id = ?, brewer_id = ?, ratio = ?, dose_g = ?, grind_size = ?, water_g = ?, yield_g = ?, temp_c = ?, brew_time = ?
		WHERE id = ? AND user_id = ?
	`
	deleteRecipeSQL       = `DELETE FROM recipes WHERE id = ? AND user_id = ?`
	favoriteRecipeSQL     = `UPDATE recipes SET favorite = ? WHERE id = ? AND user_id = ?`
	insertRecipeStepSQL   = `INSERT INTO recipe_steps (recipe_id, position, description, water_g, duration_sec) VALUES (?, ?, ?, ?, ?)`
	deleteRecipeStepsSQL  = `DELETE FROM recipe_steps WHERE recipe_id = ?`
	selectRecipeStepsSQL  = `SELECT id, position, description, water_g, duration_sec FROM recipe_steps WHERE recipe_id = ? ORDER BY position`
)

// nullableID maps a zero id to SQL NULL so optional references stay
// honest foreign keys.
func nullableID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

// Create inserts the recipe row and its ordered steps in one transaction.
func (r *RecipeSQLite) Create(ctx context.Context, rec models.Recipe) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create recipe: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, insertRecipeSQL,
		rec.UserID, rec.Name, nullableID(rec.GrinderID), nullableID(rec.BrewerID),
		rec.Ratio, rec.DoseG, rec.GrindSize, rec.WaterG, rec.YieldG, rec.TempC, rec.BrewTime, rec.Favorite)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := lastInsertID(res, "insert recipe")
	if err != nil {
		return 0, err
	}

	if err := insertSteps(ctx, tx, id, rec.Steps); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create recipe: %w", err)
	}
	return id, nil
}

func insertSteps(ctx context.Context, tx *sql.Tx, recipeID int, steps []models.RecipeStep) error {
	for i, st := range steps {
		pos := st.Position
		if pos == 0 {
			pos = i + 1
		}
		if _, err := tx.ExecContext(ctx, insertRecipeStepSQL,
			recipeID, pos, st.Description, st.WaterG, st.DurationSec); err != nil {
			return fmt.Errorf("insert recipe step %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *RecipeSQLite) List(ctx context.Context, userID int) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectRecipeColumns+` FROM recipes WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Recipe, 0, 16)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		steps, err := r.loadSteps(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Steps = steps
	}
	return out, nil
}

func (r *RecipeSQLite) GetByID(ctx context.Context, userID, id int) (models.Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectRecipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`, id, userID)
	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, ErrNotFound
		}
		return models.Recipe{}, err
	}
	steps, err := r.loadSteps(ctx, rec.ID)
	if err != nil {
		return models.Recipe{}, err
	}
	rec.Steps = steps
	return rec, nil
}

// Update replaces the recipe's own fields and rewrites its step list.
// The favorite flag is left alone; it has its own toggle.
func (r *RecipeSQLite) Update(ctx context.Context, rec models.Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update recipe: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, updateRecipeSQL,
		rec.Name, nullableID(rec.GrinderID), nullableID(rec.BrewerID),
		rec.Ratio, rec.DoseG, rec.GrindSize, rec.WaterG, rec.YieldG, rec.TempC, rec.BrewTime,
		rec.ID, rec.UserID)
	if err != nil {
		return fmt.Errorf("update recipe id=%d: %w", rec.ID, err)
	}
	if err := requireAffected(res, "update recipe"); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, deleteRecipeStepsSQL, rec.ID); err != nil {
		return fmt.Errorf("clear recipe id=%d steps: %w", rec.ID, err)
	}
	if err := insertSteps(ctx, tx, rec.ID, rec.Steps); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update recipe: %w", err)
	}
	return nil
}

func (r *RecipeSQLite) Delete(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteRecipeSQL, id, userID)
	if err != nil {
		return fmt.Errorf("delete recipe id=%d: %w", id, err)
	}
	return requireAffected(res, "delete recipe")
}

func (r *RecipeSQLite) SetFavorite(ctx context.Context, userID, id int, favorite bool) error {
	res, err := r.db.ExecContext(ctx, favoriteRecipeSQL, favorite, id, userID)
	if err != nil {
		return fmt.Errorf("favorite recipe id=%d: %w", id, err)
	}
	return requireAffected(res, "favorite recipe")
}

func (r *RecipeSQLite) loadSteps(ctx context.Context, recipeID int) ([]models.RecipeStep, error) {
	rows, err := r.db.QueryContext(ctx, selectRecipeStepsSQL, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []models.RecipeStep
	for rows.Next() {
		var st models.RecipeStep
		var water sql.NullFloat64
		var dur sql.NullInt64
		if err := rows.Scan(&st.ID, &st.Position, &st.Description, &water, &dur); err != nil {
			return nil, err
		}
		st.WaterG = water.Float64
		st.DurationSec = int(dur.Int64)
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// rowScanner lets scanRecipe work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (models.Recipe, error) {
	var rec models.Recipe
	var grinderID, brewerID sql.NullInt64
	var ratio, brewTime sql.NullString
	var dose, grind, water, yield, temp sql.NullFloat64
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &grinderID, &brewerID,
		&ratio, &dose, &grind, &water, &yield, &temp, &brewTime, &rec.Favorite); err != nil {
		return models.Recipe{}, err
	}
	rec.GrinderID = int(grinderID.Int64)
	rec.BrewerID = int(brewerID.Int64)
	rec.Ratio = ratio.String
	rec.DoseG = dose.Float64
	rec.GrindSize = grind.Float64
	rec.WaterG = water.Float64
	rec.YieldG = yield.Float64
	rec.TempC = temp.Float64
	rec.BrewTime = brewTime.String
	return rec, nil
}

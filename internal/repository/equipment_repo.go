package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brewlog/internal/models"
)

type EquipmentSQLite struct {
	db *sql.DB
}

func NewEquipmentSQLite(db *sql.DB) *EquipmentSQLite {
	return &EquipmentSQLite{db: db}
}

var _ EquipmentRepo = (*EquipmentSQLite)(nil)

// requireAffected turns a zero-row update/delete into ErrNotFound so
// ownership violations and missing rows look identical to callers.
func requireAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// lastInsertID extracts the auto-increment id of an insert.
func lastInsertID(res sql.Result, op string) (int, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s last insert id: %w", op, err)
	}
	return int(id), nil
}

// ---- Grinders ----

func (r *EquipmentSQLite) CreateGrinder(ctx context.Context, g models.Grinder) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO grinders (user_id, name, grind_scale_max) VALUES (?, ?, ?)`,
		g.UserID, g.Name, g.GrindScaleMax)
	if err != nil {
		return 0, fmt.Errorf("insert grinder: %w", err)
	}
	return lastInsertID(res, "insert grinder")
}

func (r *EquipmentSQLite) ListGrinders(ctx context.Context, userID int) ([]models.Grinder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, grind_scale_max FROM grinders WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Grinder, 0, 8)
	for rows.Next() {
		var g models.Grinder
		var scale sql.NullFloat64
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &scale); err != nil {
			return nil, err
		}
		g.GrindScaleMax = scale.Float64
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *EquipmentSQLite) UpdateGrinder(ctx context.Context, g models.Grinder) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE grinders SET name = ?, grind_scale_max = ? WHERE id = ? AND user_id = ?`,
		g.Name, g.GrindScaleMax, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update grinder id=%d: %w", g.ID, err)
	}
	return requireAffected(res, "update grinder")
}

func (r *EquipmentSQLite) DeleteGrinder(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM grinders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete grinder id=%d: %w", id, err)
	}
	return requireAffected(res, "delete grinder")
}

// ---- Brewers ----

func (r *EquipmentSQLite) CreateBrewer(ctx context.Context, b models.Brewer) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO brewers (user_id, name, method) VALUES (?, ?, ?)`,
		b.UserID, b.Name, b.Method)
	if err != nil {
		return 0, fmt.Errorf("insert brewer: %w", err)
	}
	return lastInsertID(res, "insert brewer")
}

func (r *EquipmentSQLite) ListBrewers(ctx context.Context, userID int) ([]models.Brewer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, method FROM brewers WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Brewer, 0, 8)
	for rows.Next() {
		var b models.Brewer
		var method sql.NullString
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &method); err != nil {
			return nil, err
		}
		b.Method = method.String
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *EquipmentSQLite) UpdateBrewer(ctx context.Context, b models.Brewer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE brewers SET name = ?, method = ? WHERE id = ? AND user_id = ?`,
		b.Name, b.Method, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update brewer id=%d: %w", b.ID, err)
	}
	return requireAffected(res, "update brewer")
}

func (r *EquipmentSQLite) DeleteBrewer(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM brewers WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete brewer id=%d: %w", id, err)
	}
	return requireAffected(res, "delete brewer")
}

// ---- Servers ----

func (r *EquipmentSQLite) CreateServer(ctx context.Context, s models.Server) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO servers (user_id, name, volume_ml) VALUES (?, ?, ?)`,
		s.UserID, s.Name, s.VolumeML)
	if err != nil {
		return 0, fmt.Errorf("insert server: %w", err)
	}
	return lastInsertID(res, "insert server")
}

func (r *EquipmentSQLite) ListServers(ctx context.Context, userID int) ([]models.Server, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, volume_ml FROM servers WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Server, 0, 4)
	for rows.Next() {
		var s models.Server
		var vol sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &vol); err != nil {
			return nil, err
		}
		s.VolumeML = vol.Float64
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *EquipmentSQLite) UpdateServer(ctx context.Context, s models.Server) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE servers SET name = ?, volume_ml = ? WHERE id = ? AND user_id = ?`,
		s.Name, s.VolumeML, s.ID, s.UserID)
	if err != nil {
		return fmt.Errorf("update server id=%d: %w", s.ID, err)
	}
	return requireAffected(res, "update server")
}

func (r *EquipmentSQLite) DeleteServer(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM servers WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete server id=%d: %w", id, err)
	}
	return requireAffected(res, "delete server")
}

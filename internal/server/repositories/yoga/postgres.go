package yoga

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nutricare/internal/dbx"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ReplaceAll deletes every cached pose and inserts poses in order. Callers
// run it inside dbx.WithTx so readers never see a half-written set.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, poses []models.YogaPose) (int, error) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM yoga_poses`); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	query := `
		INSERT INTO yoga_poses (pose_name, category, description, image_url, steps)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i := range poses {
		p := &poses[i]
		if _, err := r.db.ExecContext(ctx, query, p.Name, p.Category, p.Description, p.ImageURL, p.Steps.Text()); err != nil {
			return 0, fmt.Errorf("db error: %w", err)
		}
	}
	return len(poses), nil
}

// List returns the cached poses, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.YogaPose, error) {
	query := `
		SELECT id, pose_name, category, description, image_url, steps, created_at
		FROM yoga_poses
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select yoga_poses: %w", err)
	}
	defer rows.Close()

	result := make([]*models.YogaPose, 0)
	for rows.Next() {
		p := &models.YogaPose{}
		var steps string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL, &steps, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Steps = models.StepsFromText(steps)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

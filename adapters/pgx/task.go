package pgx

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jlbarros/tasko/core"
)

// Every task query below filters by user_id in addition to the task
// ID. pgx.ErrNoRows therefore covers both a missing row and a row
// owned by someone else, and both map to core.ErrTaskNotFound.

func (a *Adapter) CreateTask(ctx context.Context, task *core.Task) error {
	query := `INSERT INTO public.tasks (user_id, title, description, completed)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`

	err := a.pool.QueryRow(ctx, query,
		task.UserID, task.Title, task.Description, task.Completed,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (a *Adapter) ListTasks(ctx context.Context, ownerID uuid.UUID, page, limit int) (*core.TaskPage, error) {
	var total int
	err := a.pool.QueryRow(ctx,
		`SELECT count(*) FROM public.tasks WHERE user_id = $1`, ownerID,
	).Scan(&total)
	if err != nil {
		return nil, err
	}

	q := `SELECT id, user_id, title, description, completed, created_at, updated_at
	      FROM public.tasks WHERE user_id = $1
	      ORDER BY id
	      LIMIT $2 OFFSET $3`

	rows, err := a.pool.Query(ctx, q, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*core.Task
	for rows.Next() {
		task := &core.Task{}
		err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
			&task.Completed, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &core.TaskPage{
		Tasks: tasks,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (a *Adapter) GetTask(ctx context.Context, ownerID uuid.UUID, taskID int64) (*core.Task, error) {
	q := `SELECT id, user_id, title, description, completed, created_at, updated_at
	      FROM public.tasks WHERE id = $1 AND user_id = $2`
	return a.scanTask(a.pool.QueryRow(ctx, q, taskID, ownerID))
}

func (a *Adapter) UpdateTask(ctx context.Context, ownerID uuid.UUID, taskID int64, patch core.TaskPatch) (*core.Task, error) {
	// COALESCE keeps unset fields untouched; the whole update is a
	// single statement so a partial write is never observable.
	q := `UPDATE public.tasks
	      SET title       = COALESCE($1, title),
	          description = COALESCE($2, description),
	          completed   = COALESCE($3, completed),
	          updated_at  = now()
	      WHERE id = $4 AND user_id = $5
	      RETURNING id, user_id, title, description, completed, created_at, updated_at`
	return a.scanTask(a.pool.QueryRow(ctx, q, patch.Title, patch.Description, patch.Completed, taskID, ownerID))
}

func (a *Adapter) DeleteTask(ctx context.Context, ownerID uuid.UUID, taskID int64) (bool, error) {
	tag, err := a.pool.Exec(ctx,
		`DELETE FROM public.tasks WHERE id = $1 AND user_id = $2`, taskID, ownerID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, core.ErrTaskNotFound
	}
	return true, nil
}

func (a *Adapter) SetTaskCompleted(ctx context.Context, ownerID uuid.UUID, taskID int64, completed bool) (*core.Task, error) {
	q := `UPDATE public.tasks
	      SET completed = $1, updated_at = now()
	      WHERE id = $2 AND user_id = $3
	      RETURNING id, user_id, title, description, completed, created_at, updated_at`
	return a.scanTask(a.pool.QueryRow(ctx, q, completed, taskID, ownerID))
}

func (a *Adapter) scanTask(row pgx.Row) (*core.Task, error) {
	task := &core.Task{}
	var description *string
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &description,
		&task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrTaskNotFound
		}
		return nil, err
	}
	task.Description = description
	return task, nil
}

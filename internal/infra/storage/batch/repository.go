package batch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/travel-backoffice/internal/domain"
	"github.com/m04kA/travel-backoffice/pkg/dbmetrics"
	"github.com/m04kA/travel-backoffice/pkg/psqlbuilder"
)

const table = "import_batches"

var columns = []string{
	"id",
	"name",
	"file_name",
	"uploaded_by",
	"uploaded_at",
	"total_records",
	"success_count",
	"error_count",
	"created_at",
	"updated_at",
}

// Repository репозиторий пакетов импорта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пакет импорта
func (r *Repository) Create(ctx context.Context, b *domain.ImportBatch) (*domain.ImportBatch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"file_name",
			"uploaded_by",
			"uploaded_at",
			"total_records",
			"success_count",
			"error_count",
		).
		Values(
			b.Name,
			b.FileName,
			b.UploadedBy,
			b.UploadedAt,
			b.TotalRecords,
			b.SuccessCount,
			b.ErrorCount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает пакет по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ImportBatch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBatch(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan batch: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetOrCreateByName находит пакет по имени или создаёт новый; created = true, если пакет создан этим вызовом
// Внутри транзакции найденная строка блокируется (FOR UPDATE), чтобы счётчики
// не разъехались при параллельном ручном добавлении в одну группу.
func (r *Repository) GetOrCreateByName(ctx context.Context, name, fileName string, uploadedBy int64) (*domain.ImportBatch, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"name": name}).
		OrderBy("id ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetOrCreateByName - build select query: %v", ErrBuildQuery, err)
	}

	found, err := scanBatch(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("%w: GetOrCreateByName - scan batch: %v", ErrScanRow, err)
	}

	created, err := r.Create(ctx, &domain.ImportBatch{
		Name:       name,
		FileName:   fileName,
		UploadedBy: uploadedBy,
		UploadedAt: nowUTC(),
	})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// List возвращает пакеты с количеством бронирований, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.ImportBatch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cols := append(qualified("b", columns),
		"(SELECT COUNT(*) FROM bookings bk WHERE bk.import_batch_id = b.id) AS booking_count")

	query, args, err := psqlbuilder.Select(cols...).
		From(table + " b").
		OrderBy("b.uploaded_at DESC", "b.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	batches := make([]*domain.ImportBatch, 0)
	for rows.Next() {
		var (
			b                    domain.ImportBatch
			uploadedAt           sql.NullTime
			createdAt, updatedAt sql.NullTime
		)
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.FileName,
			&b.UploadedBy,
			&uploadedAt,
			&b.TotalRecords,
			&b.SuccessCount,
			&b.ErrorCount,
			&createdAt,
			&updatedAt,
			&b.BookingCount,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan batch: %v", ErrScanRow, err)
		}
		b.UploadedAt = uploadedAt.Time
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		batches = append(batches, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return batches, nil
}

// UpdateCounts перезаписывает счётчики успешных и ошибочных строк
func (r *Repository) UpdateCounts(ctx context.Context, id int64, successCount, errorCount int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("success_count", successCount).
		Set("error_count", errorCount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCounts - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateCounts", query, args)
}

// IncrementCounts увеличивает total_records и success_count (ручное добавление в группу)
func (r *Repository) IncrementCounts(ctx context.Context, id int64, total, success int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("total_records", squirrel.Expr("total_records + ?", total)).
		Set("success_count", squirrel.Expr("success_count + ?", success)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementCounts - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "IncrementCounts", query, args)
}

// Delete удаляет пакет
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBatchNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBatch(s scanner) (*domain.ImportBatch, error) {
	var (
		b                    domain.ImportBatch
		uploadedAt           sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := s.Scan(
		&b.ID,
		&b.Name,
		&b.FileName,
		&b.UploadedBy,
		&uploadedAt,
		&b.TotalRecords,
		&b.SuccessCount,
		&b.ErrorCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.UploadedAt = uploadedAt.Time
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func qualified(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

package payment

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

const table = "payments"

var columns = []string{
	"id",
	"booking_id",
	"amount",
	"payment_date",
	"payment_method",
	"reference",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платёж
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"booking_id",
			"amount",
			"payment_date",
			"payment_method",
			"reference",
			"notes",
		).
		Values(
			p.BookingID,
			p.Amount,
			p.PaymentDate,
			p.PaymentMethod,
			p.Reference,
			p.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает платёж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	return p, nil
}

// ListByBooking возвращает платежи бронирования, новые первыми
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("payment_date DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan payment: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// SumByBooking сумма платежей бронирования
func (r *Repository) SumByBooking(ctx context.Context, bookingID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumByBooking - build select query: %v", ErrBuildQuery, err)
	}

	var sum float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumByBooking - scan sum: %v", ErrScanRow, err)
	}

	return sum, nil
}

// Update сохраняет изменяемые поля платежа
func (r *Repository) Update(ctx context.Context, p *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("amount", p.Amount).
		Set("payment_date", p.PaymentDate).
		Set("payment_method", p.PaymentMethod).
		Set("reference", p.Reference).
		Set("notes", p.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	p.UpdatedAt = updatedAt.Time
	return nil
}

// Delete удаляет платёж
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// DeleteByBookings удаляет платежи перечисленных бронирований
func (r *Repository) DeleteByBookings(ctx context.Context, bookingIDs []int64) (int64, error) {
	if len(bookingIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBookings - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execCount(ctx, executor, "DeleteByBookings", query, args)
}

// DeleteByBatch удаляет платежи всех бронирований пакета
func (r *Repository) DeleteByBatch(ctx context.Context, batchID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Expr("booking_id IN (SELECT id FROM bookings WHERE import_batch_id = ?)", batchID)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBatch - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execCount(ctx, executor, "DeleteByBatch", query, args)
}

// TotalsByMethod суммы и количество платежей по способу оплаты
func (r *Repository) TotalsByMethod(ctx context.Context, period domain.ReportPeriod) ([]domain.MethodTotal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyPeriod(
		psqlbuilder.Select("payment_method", "COALESCE(SUM(amount), 0)", "COUNT(*)").From(table),
		period,
	).
		GroupBy("payment_method").
		OrderBy("2 DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TotalsByMethod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TotalsByMethod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	totals := make([]domain.MethodTotal, 0)
	for rows.Next() {
		var t domain.MethodTotal
		if err := rows.Scan(&t.Method, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("%w: TotalsByMethod - scan row: %v", ErrScanRow, err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TotalsByMethod - rows error: %v", ErrScanRow, err)
	}

	return totals, nil
}

// TotalsByMonth суммы и количество платежей по месяцам, новые первыми
func (r *Repository) TotalsByMonth(ctx context.Context, period domain.ReportPeriod) ([]domain.MonthlyTotal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyPeriod(
		psqlbuilder.Select(
			"EXTRACT(YEAR FROM payment_date)::int AS year",
			"EXTRACT(MONTH FROM payment_date)::int AS month",
			"COALESCE(SUM(amount), 0)",
			"COUNT(*)",
		).From(table),
		period,
	).
		GroupBy("year", "month").
		OrderBy("year DESC", "month DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TotalsByMonth - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TotalsByMonth - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	totals := make([]domain.MonthlyTotal, 0)
	for rows.Next() {
		var t domain.MonthlyTotal
		if err := rows.Scan(&t.Year, &t.Month, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("%w: TotalsByMonth - scan row: %v", ErrScanRow, err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TotalsByMonth - rows error: %v", ErrScanRow, err)
	}

	return totals, nil
}

func (r *Repository) execCount(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

func applyPeriod(sb squirrel.SelectBuilder, period domain.ReportPeriod) squirrel.SelectBuilder {
	if period.From != nil {
		sb = sb.Where(squirrel.GtOrEq{"payment_date": *period.From})
	}
	if period.To != nil {
		sb = sb.Where(squirrel.LtOrEq{"payment_date": *period.To})
	}
	return sb
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(s scanner) (*domain.Payment, error) {
	var (
		p                    domain.Payment
		createdAt, updatedAt sql.NullTime
	)

	err := s.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.PaymentDate,
		&p.PaymentMethod,
		&p.Reference,
		&p.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

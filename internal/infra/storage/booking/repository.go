package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/travel-backoffice/internal/domain"
	"github.com/m04kA/travel-backoffice/pkg/dbmetrics"
	"github.com/m04kA/travel-backoffice/pkg/psqlbuilder"
)

const table = "bookings"

// columns порядок колонок для SELECT и scanBooking
var columns = []string{
	"id",
	"system_booking_id",
	"e_ticket",
	"booking_number",
	"surname",
	"first_name",
	"passport",
	"travel_date",
	"return_date",
	"visa",
	"date_of_birth",
	"nationality",
	"private_room",
	"email",
	"phone",
	"notes",
	"package_price",
	"deposit",
	"total_payments",
	"remaining",
	"umra_visa_fee",
	"status",
	"import_batch_id",
	"version",
	"created_at",
	"updated_at",
}

// searchColumns колонки для свободного поиска
var searchColumns = []string{
	"booking_number",
	"e_ticket",
	"surname",
	"first_name",
	"passport",
	"nationality",
	"visa",
	"private_room",
	"email",
	"phone",
	"notes",
}

// sortColumns сопоставление ключа сортировки API и колонки
var sortColumns = map[domain.BookingSortField]string{
	domain.SortByTravelDate:    "travel_date",
	domain.SortByReturnDate:    "return_date",
	domain.SortByCreatedAt:     "created_at",
	domain.SortBySurname:       "surname",
	domain.SortByFirstName:     "first_name",
	domain.SortByBookingNumber: "booking_number",
	domain.SortByPackagePrice:  "package_price",
	domain.SortByTotalPayments: "total_payments",
	domain.SortByRemaining:     "remaining",
	domain.SortByStatus:        "status",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"system_booking_id",
			"e_ticket",
			"booking_number",
			"surname",
			"first_name",
			"passport",
			"travel_date",
			"return_date",
			"visa",
			"date_of_birth",
			"nationality",
			"private_room",
			"email",
			"phone",
			"notes",
			"package_price",
			"deposit",
			"total_payments",
			"remaining",
			"umra_visa_fee",
			"status",
			"import_batch_id",
		).
		Values(
			b.SystemBookingID,
			b.ETicket,
			b.BookingNumber,
			b.Surname,
			b.FirstName,
			b.Passport,
			b.TravelDate,
			b.ReturnDate,
			b.Visa,
			b.DateOfBirth,
			b.Nationality,
			b.PrivateRoom,
			b.Email,
			b.Phone,
			b.Notes,
			b.PackagePrice,
			b.Deposit,
			b.TotalPayments,
			b.Remaining,
			b.UmraVisaFee,
			b.Status,
			nullInt64(b.ImportBatchID),
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
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

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// List возвращает бронирования по фильтру с сортировкой и пагинацией
// Limit = 0 означает выборку без ограничения (используется для экспорта)
func (r *Repository) List(ctx context.Context, filter domain.BookingListFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(columns...).From(table), filter)

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[domain.SortByTravelDate]
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	selectBuilder = selectBuilder.OrderBy(column+" "+direction, "id "+direction)

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Count возвращает количество бронирований по фильтру (без учёта пагинации)
func (r *Repository) Count(ctx context.Context, filter domain.BookingListFilter) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update сохраняет все изменяемые поля бронирования
// Запись проходит только если версия в БД совпадает с b.Version.
// При успехе b.Version и b.UpdatedAt обновляются.
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("e_ticket", b.ETicket).
		Set("booking_number", b.BookingNumber).
		Set("surname", b.Surname).
		Set("first_name", b.FirstName).
		Set("passport", b.Passport).
		Set("travel_date", b.TravelDate).
		Set("return_date", b.ReturnDate).
		Set("visa", b.Visa).
		Set("date_of_birth", b.DateOfBirth).
		Set("nationality", b.Nationality).
		Set("private_room", b.PrivateRoom).
		Set("email", b.Email).
		Set("phone", b.Phone).
		Set("notes", b.Notes).
		Set("package_price", b.PackagePrice).
		Set("deposit", b.Deposit).
		Set("total_payments", b.TotalPayments).
		Set("remaining", b.Remaining).
		Set("umra_visa_fee", b.UmraVisaFee).
		Set("status", b.Status).
		Set("import_batch_id", nullInt64(b.ImportBatchID)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID, "version": b.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.Version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r.missOrConflict(ctx, b.ID)
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	b.UpdatedAt = updatedAt.Time
	return nil
}

// UpdateTotals записывает итоги платежей при совпадении версии
// Возвращает новую версию бронирования.
func (r *Repository) UpdateTotals(ctx context.Context, id, expectedVersion int64, totalPayments, remaining float64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("total_payments", totalPayments).
		Set("remaining", remaining).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		Suffix("RETURNING version").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: UpdateTotals - build update query: %v", ErrBuildQuery, err)
	}

	var version int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, r.missOrConflict(ctx, id)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateTotals - execute update: %v", ErrExecQuery, err)
	}

	return version, nil
}

// Delete удаляет бронирование (платежи удаляются каскадно)
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
		return ErrBookingNotFound
	}

	return nil
}

// DeleteByBatch удаляет все бронирования пакета, возвращает количество удалённых
func (r *Repository) DeleteByBatch(ctx context.Context, batchID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"import_batch_id": batchID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBatch - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBatch - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Stats считает количество бронирований, сумму оплат и сумму остатков
func (r *Repository) Stats(ctx context.Context) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(total_payments), 0)",
		"COALESCE(SUM(remaining), 0)",
	).
		From(table).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalBookings,
		&stats.TotalRevenue,
		&stats.TotalOutstanding,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// missOrConflict различает отсутствие бронирования и несовпадение версии
func (r *Repository) missOrConflict(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: missOrConflict - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: missOrConflict - scan: %v", ErrScanRow, err)
	}

	return ErrVersionConflict
}

// applyFilter добавляет условия фильтра к запросу
func applyFilter(sb squirrel.SelectBuilder, f domain.BookingListFilter) squirrel.SelectBuilder {
	if f.Status != nil {
		sb = sb.Where(squirrel.Eq{"status": *f.Status})
	}

	// Даты поездки хранятся строкой YYYY-MM-DD, поэтому сравнение лексикографическое
	if f.StartDate != nil || f.EndDate != nil {
		sb = sb.Where(squirrel.NotEq{"travel_date": domain.NotAssigned})
	}
	if f.StartDate != nil {
		sb = sb.Where(squirrel.GtOrEq{"travel_date": *f.StartDate})
	}
	if f.EndDate != nil {
		sb = sb.Where(squirrel.LtOrEq{"travel_date": *f.EndDate})
	}

	if f.ImportBatchID != nil {
		sb = sb.Where(squirrel.Eq{"import_batch_id": *f.ImportBatchID})
	}

	if f.HasRemaining != nil {
		if *f.HasRemaining {
			sb = sb.Where(squirrel.Gt{"remaining": 0})
		} else {
			sb = sb.Where(squirrel.LtOrEq{"remaining": 0})
		}
	}

	if f.HasUmrahFee != nil {
		if *f.HasUmrahFee {
			sb = sb.Where(squirrel.Gt{"umra_visa_fee": 0})
		} else {
			sb = sb.Where(squirrel.LtOrEq{"umra_visa_fee": 0})
		}
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		or := make(squirrel.Or, 0, len(searchColumns))
		for _, c := range searchColumns {
			or = append(or, squirrel.ILike{c: pattern})
		}
		sb = sb.Where(or)
	}

	return sb
}

// escapeLike экранирует спецсимволы LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке columns
func scanBooking(s scanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		batchID              sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := s.Scan(
		&b.ID,
		&b.SystemBookingID,
		&b.ETicket,
		&b.BookingNumber,
		&b.Surname,
		&b.FirstName,
		&b.Passport,
		&b.TravelDate,
		&b.ReturnDate,
		&b.Visa,
		&b.DateOfBirth,
		&b.Nationality,
		&b.PrivateRoom,
		&b.Email,
		&b.Phone,
		&b.Notes,
		&b.PackagePrice,
		&b.Deposit,
		&b.TotalPayments,
		&b.Remaining,
		&b.UmraVisaFee,
		&b.Status,
		&batchID,
		&b.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if batchID.Valid {
		id := batchID.Int64
		b.ImportBatchID = &id
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

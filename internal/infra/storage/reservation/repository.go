package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/dberrors"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

var reservationColumns = []string{
	"id",
	"facility_id",
	"user_id",
	"booking_date",
	"slot_label",
	"status",
	"created_at",
	"cancelled_at",
}

// Repository журнал бронирований. Строки никогда не удаляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает новое бронирование.
// Если на тот же (facility_id, booking_date, slot_label) уже есть активная бронь,
// уникальный индекс отклоняет вставку и возвращается ErrSlotTaken
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(reservationColumns...).
		Values(
			res.ID.String(),
			res.FacilityID.String(),
			res.UserID,
			res.Date,
			res.SlotLabel,
			string(res.Status),
			res.CreatedAt.UTC(),
			nil,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// FindActive ищет активное бронирование на (площадка, дата, слот)
func (r *Repository) FindActive(ctx context.Context, key domain.SlotKey) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"facility_id":  key.FacilityID.String(),
			"booking_date": key.Date,
			"slot_label":   key.SlotLabel,
			"status":       string(domain.StatusActive),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Cancel переводит активное бронирование в статус cancelled.
// Возвращает ErrNotActive, если бронь уже отменена или не существует
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", cancelledAt.UTC()).
		Where(squirrel.Eq{"id": id.String(), "status": string(domain.StatusActive)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotActive
	}

	return nil
}

// ListBookedLabels возвращает метки слотов с активными бронями на дату
func (r *Repository) ListBookedLabels(ctx context.Context, facilityID uuid.UUID, date types.Date) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_label").
		From("reservations").
		Where(squirrel.Eq{
			"facility_id":  facilityID.String(),
			"booking_date": date,
			"status":       string(domain.StatusActive),
		}).
		OrderBy("slot_label ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedLabels - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedLabels - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	labels := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("%w: ListBookedLabels - scan label: %v", ErrScanRow, err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedLabels - rows error: %v", ErrScanRow, err)
	}

	return labels, nil
}

// ListByUser возвращает историю бронирований пользователя, включая отмененные.
// Сначала более поздние даты, внутри даты - более поздние по созданию
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.ReservationDetails, error) {
	return r.listDetails(ctx, "ListByUser", squirrel.Eq{"r.user_id": userID})
}

// ListAll возвращает все бронирования в том же порядке, что и ListByUser
func (r *Repository) ListAll(ctx context.Context) ([]*domain.ReservationDetails, error) {
	return r.listDetails(ctx, "ListAll", nil)
}

func (r *Repository) listDetails(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"r.id",
		"r.facility_id",
		"r.user_id",
		"r.booking_date",
		"r.slot_label",
		"r.status",
		"r.created_at",
		"r.cancelled_at",
		"f.name",
		"f.price_per_hour",
	).
		From("reservations r").
		LeftJoin("facilities f ON f.id = r.facility_id").
		OrderBy("r.booking_date DESC", "r.created_at DESC", "r.id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.ReservationDetails, 0)
	for rows.Next() {
		var (
			d           domain.ReservationDetails
			status      string
			cancelledAt sql.NullTime
			name        sql.NullString
			price       decimal.NullDecimal
		)
		if err := rows.Scan(
			&d.ID,
			&d.FacilityID,
			&d.UserID,
			&d.Date,
			&d.SlotLabel,
			&status,
			&d.CreatedAt,
			&cancelledAt,
			&name,
			&price,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}

		d.Status = domain.ReservationStatus(status)
		d.CreatedAt = d.CreatedAt.UTC()
		if cancelledAt.Valid {
			t := cancelledAt.Time.UTC()
			d.CancelledAt = &t
		}

		// площадка могла быть удалена
		d.FacilityName = domain.UnknownFacilityName
		if name.Valid {
			d.FacilityName = name.String
		}
		if price.Valid {
			d.FacilityPrice = price.Decimal
		}

		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}

// AggregateByFacility считает бронирования по площадкам.
// Площадки без бронирований и бронирования удаленных площадок не попадают в результат (INNER JOIN).
// Выручка не считается здесь: она зависит только от активных броней и текущей цены
func (r *Repository) AggregateByFacility(ctx context.Context) ([]*domain.FacilityStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.facility_id",
		"f.name",
		"f.price_per_hour",
		"COUNT(*)",
	).
		Column(squirrel.Expr("SUM(CASE WHEN r.status = ? THEN 1 ELSE 0 END)", string(domain.StatusActive))).
		Column(squirrel.Expr("SUM(CASE WHEN r.status = ? THEN 1 ELSE 0 END)", string(domain.StatusCancelled))).
		From("reservations r").
		Join("facilities f ON f.id = r.facility_id").
		GroupBy("r.facility_id", "f.name", "f.price_per_hour").
		OrderBy("f.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateByFacility - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateByFacility - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.FacilityStats, 0)
	for rows.Next() {
		var s domain.FacilityStats
		if err := rows.Scan(
			&s.FacilityID,
			&s.FacilityName,
			&s.PricePerHour,
			&s.TotalBookings,
			&s.ActiveBookings,
			&s.CancelledBookings,
		); err != nil {
			return nil, fmt.Errorf("%w: AggregateByFacility - scan stats: %v", ErrScanRow, err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: AggregateByFacility - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func scanReservation(row interface{ Scan(dest ...interface{}) error }) (*domain.Reservation, error) {
	var (
		res         domain.Reservation
		status      string
		cancelledAt sql.NullTime
	)
	if err := row.Scan(
		&res.ID,
		&res.FacilityID,
		&res.UserID,
		&res.Date,
		&res.SlotLabel,
		&status,
		&res.CreatedAt,
		&cancelledAt,
	); err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)
	if !res.Status.IsValid() {
		return nil, fmt.Errorf("unknown reservation status %q", status)
	}
	res.CreatedAt = res.CreatedAt.UTC()
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		res.CancelledAt = &t
	}

	return &res, nil
}

package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/dberrors"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/psqlbuilder"
)

var facilityColumns = []string{
	"id",
	"name",
	"price_per_hour",
	"latitude",
	"longitude",
	"image_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий площадок и их каталога слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет площадку вместе с каталогом слотов.
// Вызывающий код должен обернуть вызов в транзакцию, иначе при ошибке вставки слотов
// площадка останется без части каталога
func (r *Repository) Create(ctx context.Context, f *domain.Facility) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns(facilityColumns...).
		Values(
			f.ID.String(),
			f.Name,
			f.PricePerHour,
			f.Location.Latitude,
			f.Location.Longitude,
			f.ImageURL,
			f.CreatedAt.UTC(),
			f.UpdatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return r.InsertSlots(ctx, f.ID, f.Slots)
}

// GetByID получает площадку с каталогом слотов
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanFacility(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	slots, err := r.loadSlots(ctx, executor, []uuid.UUID{f.ID})
	if err != nil {
		return nil, err
	}
	if s, ok := slots[f.ID]; ok {
		f.Slots = s
	}

	return f, nil
}

// List возвращает все площадки, отсортированные по названию
func (r *Repository) List(ctx context.Context) ([]*domain.Facility, error) {
	return r.list(ctx, "List", nil)
}

// ListInBox возвращает площадки, попадающие в прямоугольник координат.
// Точная фильтрация по расстоянию выполняется уровнем выше
func (r *Repository) ListInBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]*domain.Facility, error) {
	return r.list(ctx, "ListInBox", squirrel.And{
		squirrel.GtOrEq{"latitude": minLat},
		squirrel.LtOrEq{"latitude": maxLat},
		squirrel.GtOrEq{"longitude": minLng},
		squirrel.LtOrEq{"longitude": maxLng},
	})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		OrderBy("name ASC", "created_at ASC")
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

	facilities := make([]*domain.Facility, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan facility: %v", ErrScanRow, op, err)
		}
		facilities = append(facilities, f)
		ids = append(ids, f.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	// курсор нужно закрыть до следующего запроса: в транзакции соединение одно
	rows.Close()

	if len(ids) == 0 {
		return facilities, nil
	}

	slots, err := r.loadSlots(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, f := range facilities {
		if s, ok := slots[f.ID]; ok {
			f.Slots = s
		}
	}

	return facilities, nil
}

// Update обновляет атрибуты площадки (каталог слотов не трогает)
func (r *Repository) Update(ctx context.Context, f *domain.Facility) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("name", f.Name).
		Set("price_per_hour", f.PricePerHour).
		Set("latitude", f.Location.Latitude).
		Set("longitude", f.Location.Longitude).
		Set("image_url", f.ImageURL).
		Set("updated_at", f.UpdatedAt.UTC()).
		Where(squirrel.Eq{"id": f.ID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Update", query, args, ErrFacilityNotFound)
}

// Delete удаляет площадку и ее каталог слотов. Бронирования не затрагиваются
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.DeleteSlots(ctx, id); err != nil {
		return err
	}

	query, args, err := psqlbuilder.Delete("facilities").
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Delete", query, args, ErrFacilityNotFound)
}

// InsertSlots добавляет слоты в каталог площадки
func (r *Repository) InsertSlots(ctx context.Context, facilityID uuid.UUID, slots []domain.SlotDefinition) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("facility_slots").
		Columns("id", "facility_id", "label", "position")
	for _, s := range slots {
		builder = builder.Values(s.ID.String(), facilityID.String(), s.Label, s.Position)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicateSlotLabel
		}
		return fmt.Errorf("%w: InsertSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteSlots удаляет весь каталог слотов площадки
func (r *Repository) DeleteSlots(ctx context.Context, facilityID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("facility_slots").
		Where(squirrel.Eq{"facility_id": facilityID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteSlots - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteSlot удаляет один слот из каталога площадки
func (r *Repository) DeleteSlot(ctx context.Context, facilityID, slotID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("facility_slots").
		Where(squirrel.Eq{"id": slotID.String(), "facility_id": facilityID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "DeleteSlot", query, args, ErrSlotNotFound)
}

func (r *Repository) loadSlots(ctx context.Context, executor DBExecutor, facilityIDs []uuid.UUID) (map[uuid.UUID][]domain.SlotDefinition, error) {
	ids := make([]string, len(facilityIDs))
	for i, id := range facilityIDs {
		ids[i] = id.String()
	}

	query, args, err := psqlbuilder.Select("id", "facility_id", "label", "position").
		From("facility_slots").
		Where(squirrel.Eq{"facility_id": ids}).
		OrderBy("facility_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.SlotDefinition, len(facilityIDs))
	for rows.Next() {
		var (
			slot       domain.SlotDefinition
			facilityID uuid.UUID
		)
		if err := rows.Scan(&slot.ID, &facilityID, &slot.Label, &slot.Position); err != nil {
			return nil, fmt.Errorf("%w: loadSlots - scan slot: %v", ErrScanRow, err)
		}
		result[facilityID] = append(result[facilityID], slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadSlots - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) execAffecting(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var f domain.Facility
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.PricePerHour,
		&f.Location.Latitude,
		&f.Location.Longitude,
		&f.ImageURL,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()
	f.Slots = []domain.SlotDefinition{}

	return &f, nil
}

package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/pkg/dbmetrics"
	"github.com/wipeandshine/scheduling-service/pkg/psqlbuilder"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// Коды ошибок PostgreSQL
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"is_blocked",
	"blocked_by",
	"block_reason",
	"booked_by",
	"booking_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей слотов
// Единственный владелец таблицы time_slots: все изменения состояния слота
// идут через Claim/Block/ReleaseByBooking/Unblock, прямых UPDATE'ов полей нет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByDate получает все записи слотов на календарный день, по возрастанию времени начала
func (r *Repository) FindByDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"slot_date": dateOnly(date)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByID получает запись слота по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Claim атомарно занимает слот (date, startTime) бронированием
//
// Проверка занятости и запись схлопнуты в один constrained upsert:
// раздельные "проверил - записал" открывают окно гонки, в котором два
// конкурентных запроса оба проходят проверку. Здесь из двух одновременных
// Claim ровно один получает строку обратно, второй - ErrSlotTaken
func (r *Repository) Claim(ctx context.Context, date time.Time, startTime, endTime types.TimeString, userID, bookingID int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns("slot_date", "start_time", "end_time", "booked_by", "booking_id").
		Values(dateOnly(date), startTime, endTime, userID, bookingID).
		Suffix(`ON CONFLICT (slot_date, start_time) DO UPDATE SET
			end_time = EXCLUDED.end_time,
			booked_by = EXCLUDED.booked_by,
			booking_id = EXCLUDED.booking_id,
			updated_at = NOW()
		WHERE time_slots.booked_by IS NULL AND time_slots.is_blocked = FALSE
		RETURNING ` + joinColumns(slotColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Claim - build upsert query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Условие DO UPDATE не выполнилось - слот занят или заблокирован
		return nil, ErrSlotTaken
	}
	if isConflictErr(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Claim - execute upsert: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// Block атомарно ставит административную блокировку на слот (date, startTime)
// Блокировка забронированного слота запрещена; повторная блокировка
// уже заблокированного слота обновляет причину
func (r *Repository) Block(ctx context.Context, date time.Time, startTime, endTime types.TimeString, staffID int64, reason *string) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns("slot_date", "start_time", "end_time", "is_blocked", "blocked_by", "block_reason").
		Values(dateOnly(date), startTime, endTime, true, staffID, reason).
		Suffix(`ON CONFLICT (slot_date, start_time) DO UPDATE SET
			end_time = EXCLUDED.end_time,
			is_blocked = TRUE,
			blocked_by = EXCLUDED.blocked_by,
			block_reason = EXCLUDED.block_reason,
			updated_at = NOW()
		WHERE time_slots.booked_by IS NULL
		RETURNING ` + joinColumns(slotColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Block - build upsert query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotTaken
	}
	if isConflictErr(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Block - execute upsert: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// ReleaseByBooking снимает бронь со слота, привязанного к бронированию
// Идемпотентна: отсутствие подходящей записи - не ошибка
func (r *Repository) ReleaseByBooking(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("booked_by", nil).
		Set("booking_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseByBooking - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseByBooking - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Unblock снимает административную блокировку с записи слота
// Возвращает ErrSlotNotBlocked, если запись не заблокирована,
// и ErrSlotNotFound, если записи нет
func (r *Repository) Unblock(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_blocked", false).
		Set("blocked_by", nil).
		Set("block_reason", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_blocked": true}).
		Suffix("RETURNING " + joinColumns(slotColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Unblock - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Различаем отсутствующую и незаблокированную запись
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrSlotNotBlocked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Unblock - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует одну запись слота
func (r *Repository) scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBlocked,
		&slot.BlockedBy,
		&slot.BlockReason,
		&slot.BookedBy,
		&slot.BookingID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс записей слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		slot, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// isConflictErr распознаёт ошибки PostgreSQL, означающие проигрыш гонки за слот:
// нарушение уникального индекса при одновременных INSERT и serialization failure
// внутри сериализуемой транзакции
func isConflictErr(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation || pqErr.Code == pgSerializationFailure
	}
	return false
}

// dateOnly обнуляет компонент времени даты - ключ слота это календарный день
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// joinColumns собирает список колонок для RETURNING
func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

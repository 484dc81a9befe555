package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/pkg/dbmetrics"
	"github.com/wipeandshine/scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var subscriptionColumns = []string{
	"id",
	"user_id",
	"service_id",
	"status",
	"start_date",
	"end_date",
	"current_period_end",
	"renewal_reminder_sent",
	"created_at",
	"updated_at",
}

// Repository репозиторий подписок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подписок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindDueForReminder получает активные подписки, чей период заканчивается
// в указанный календарный день и напоминание по которым ещё не отправлено
func (r *Repository) FindDueForReminder(ctx context.Context, periodEndDay time.Time) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(periodEndDay.Year(), periodEndDay.Month(), periodEndDay.Day(), 0, 0, 0, 0, periodEndDay.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"status": domain.SubscriptionActive}).
		Where(squirrel.Eq{"renewal_reminder_sent": false}).
		Where(squirrel.GtOrEq{"current_period_end": dayStart}).
		Where(squirrel.Lt{"current_period_end": dayEnd}).
		OrderBy("current_period_end ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindDueForReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindDueForReminder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

// FindLapsed получает активные подписки с истёкшим периодом
func (r *Repository) FindLapsed(ctx context.Context, asOf time.Time) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"status": domain.SubscriptionActive}).
		Where(squirrel.Lt{"current_period_end": asOf}).
		OrderBy("current_period_end ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindLapsed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindLapsed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

// MarkReminderSent помечает подписку как получившую напоминание о продлении
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	return r.update(ctx, "MarkReminderSent", psqlbuilder.Update("subscriptions").
		Set("renewal_reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// UpdateStatus обновляет статус подписки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error {
	return r.update(ctx, "UpdateStatus", psqlbuilder.Update("subscriptions").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

func (r *Repository) update(ctx context.Context, method string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

// scanSubscriptions сканирует результаты запроса в слайс подписок
func (r *Repository) scanSubscriptions(rows *sql.Rows) ([]*domain.Subscription, error) {
	subscriptions := make([]*domain.Subscription, 0)

	for rows.Next() {
		var sub domain.Subscription
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&sub.ID,
			&sub.UserID,
			&sub.ServiceID,
			&sub.Status,
			&sub.StartDate,
			&sub.EndDate,
			&sub.CurrentPeriodEnd,
			&sub.RenewalReminderSent,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSubscriptions - scan row: %v", ErrScanRow, err)
		}

		sub.CreatedAt = createdAt.Time
		sub.UpdatedAt = updatedAt.Time

		subscriptions = append(subscriptions, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSubscriptions - rows error: %v", ErrScanRow, err)
	}

	return subscriptions, nil
}

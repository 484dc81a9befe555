package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/pkg/dbmetrics"
	"github.com/wipeandshine/scheduling-service/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("audit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("audit.repository: failed to execute query")
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий журнала аудита (только запись)
// Чтение и поиск по журналу выполняются внешними инструментами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает событие аудита
func (r *Repository) Create(ctx context.Context, entry *domain.AuditLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("audit_logs").
		Columns("user_id", "action", "entity_type", "entity_id", "details", "ip_address", "user_agent").
		Values(
			entry.UserID,
			entry.Action,
			entry.EntityType,
			entry.EntityID,
			[]byte(entry.Details),
			entry.IPAddress,
			entry.UserAgent,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

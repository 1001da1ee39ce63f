package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barberhub/booking-service/internal/domain"
	"github.com/barberhub/booking-service/pkg/dbmetrics"
	"github.com/barberhub/booking-service/pkg/psqlbuilder"
)

// ruleColumns колонки таблицы working_hours в порядке сканирования
var ruleColumns = []string{
	"id",
	"provider_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_working",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRule получает правило рабочих часов мастера на день недели
// Возвращает ErrRuleNotFound, если правило не задано — для движка доступности
// это валидный результат "мастер в этот день не работает"
func (r *Repository) GetRule(ctx context.Context, providerID int64, day domain.Weekday) (*domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("working_hours").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	rule, err := scanRule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetWeek получает все правила рабочих часов мастера, упорядоченные по дню недели
func (r *Repository) GetWeek(ctx context.Context, providerID int64) ([]*domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("working_hours").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.WorkingHoursRule, 0, domain.DaysPerWeek)
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// ReplaceWeek заменяет недельное расписание мастера целиком: удаляет все
// существующие правила и вставляет новые. Обязан вызываться внутри транзакции
// (через TransactionManager) — частично заменённая неделя недопустима
func (r *Repository) ReplaceWeek(ctx context.Context, providerID int64, rules []*domain.WorkingHoursRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns("provider_id", "day_of_week", "start_time", "end_time", "is_working")

	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(
			providerID,
			int(rule.DayOfWeek),
			rule.StartTime,
			rule.EndTime,
			rule.IsWorking,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanRule сканирует одну строку в правило рабочих часов
func scanRule(scan func(dest ...interface{}) error) (*domain.WorkingHoursRule, error) {
	var rule domain.WorkingHoursRule
	var day int
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&rule.ID,
		&rule.ProviderID,
		&day,
		&rule.StartTime,
		&rule.EndTime,
		&rule.IsWorking,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.DayOfWeek = domain.Weekday(day)
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

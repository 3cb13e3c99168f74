package schedule

import (
	"context"
	"time"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// Function-field mocks for error-path tests. Methods panic on a nil
// Func so an unexpected call fails loudly.

type templateRepoMock struct {
	AddFunc       func(ctx context.Context, tpl domain.WeeklyTemplate) (int64, error)
	GetAllFunc    func(ctx context.Context) ([]domain.WeeklyTemplate, error)
	GetActiveFunc func(ctx context.Context) ([]domain.WeeklyTemplate, error)
}

func (m *templateRepoMock) Add(ctx context.Context, tpl domain.WeeklyTemplate) (int64, error) {
	return m.AddFunc(ctx, tpl)
}

func (m *templateRepoMock) GetAll(ctx context.Context) ([]domain.WeeklyTemplate, error) {
	return m.GetAllFunc(ctx)
}

func (m *templateRepoMock) GetActive(ctx context.Context) ([]domain.WeeklyTemplate, error) {
	return m.GetActiveFunc(ctx)
}

type instanceRepoMock struct {
	AddFunc              func(ctx context.Context, inst domain.TrainingInstance) (int64, error)
	GetByDateFunc        func(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error)
	GetByIDFunc          func(ctx context.Context, id int64) (domain.TrainingInstance, error)
	GetByIDForUpdateFunc func(ctx context.Context, id int64) (domain.TrainingInstance, error)
	UpdateFunc           func(ctx context.Context, inst domain.TrainingInstance) error
}

func (m *instanceRepoMock) Add(ctx context.Context, inst domain.TrainingInstance) (int64, error) {
	return m.AddFunc(ctx, inst)
}

func (m *instanceRepoMock) GetByDate(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error) {
	return m.GetByDateFunc(ctx, date)
}

func (m *instanceRepoMock) GetByID(ctx context.Context, id int64) (domain.TrainingInstance, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *instanceRepoMock) GetByIDForUpdate(ctx context.Context, id int64) (domain.TrainingInstance, error) {
	return m.GetByIDForUpdateFunc(ctx, id)
}

func (m *instanceRepoMock) Update(ctx context.Context, inst domain.TrainingInstance) error {
	return m.UpdateFunc(ctx, inst)
}

type changeLogRepoMock struct {
	AddFunc           func(ctx context.Context, entry domain.ChangeLogEntry) (int64, error)
	GetByTrainingFunc func(ctx context.Context, trainingID int64) ([]domain.ChangeLogEntry, error)
	GetAllFunc        func(ctx context.Context, limit int) ([]domain.ChangeLogEntry, error)
}

func (m *changeLogRepoMock) Add(ctx context.Context, entry domain.ChangeLogEntry) (int64, error) {
	return m.AddFunc(ctx, entry)
}

func (m *changeLogRepoMock) GetByTraining(ctx context.Context, trainingID int64) ([]domain.ChangeLogEntry, error) {
	return m.GetByTrainingFunc(ctx, trainingID)
}

func (m *changeLogRepoMock) GetAll(ctx context.Context, limit int) ([]domain.ChangeLogEntry, error) {
	return m.GetAllFunc(ctx, limit)
}

// txManagerMock runs the callback directly on the caller's context.
// Rollback semantics are exercised by the adapter tests against a real
// database; here an error from the callback simply propagates.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
	LockKeyFunc func(ctx context.Context, key string) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func (m *txManagerMock) LockKey(ctx context.Context, key string) error {
	if m.LockKeyFunc != nil {
		return m.LockKeyFunc(ctx, key)
	}
	return nil
}

package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

// memStore is an in-memory implementation of all three store interfaces
// plus the transaction manager, used for engine behavior tests. It keeps
// the same ordering guarantees as the PostgreSQL repos.
type memStore struct {
	templates  map[int64]domain.WeeklyTemplate
	instances  map[int64]domain.TrainingInstance
	logEntries []domain.ChangeLogEntry

	nextTemplateID int64
	nextInstanceID int64
	nextLogID      int64
}

func newMemStore() *memStore {
	return &memStore{
		templates: make(map[int64]domain.WeeklyTemplate),
		instances: make(map[int64]domain.TrainingInstance),
	}
}

func (m *memStore) Add(ctx context.Context, tpl domain.WeeklyTemplate) (int64, error) {
	if err := tpl.Validate(); err != nil {
		return 0, err
	}
	m.nextTemplateID++
	tpl.ID = m.nextTemplateID
	m.templates[tpl.ID] = tpl
	return tpl.ID, nil
}

func (m *memStore) GetAll(ctx context.Context) ([]domain.WeeklyTemplate, error) {
	return m.listTemplates(false), nil
}

func (m *memStore) GetActive(ctx context.Context) ([]domain.WeeklyTemplate, error) {
	return m.listTemplates(true), nil
}

func (m *memStore) listTemplates(activeOnly bool) []domain.WeeklyTemplate {
	var tpls []domain.WeeklyTemplate
	for _, t := range m.templates {
		if activeOnly && !t.Active {
			continue
		}
		tpls = append(tpls, t)
	}
	sort.Slice(tpls, func(i, j int) bool { return tpls[i].ID < tpls[j].ID })
	return tpls
}

// instanceStore view of memStore; separate type so the method set does
// not collide with the template repo's Add/GetAll.
type memInstances struct{ s *memStore }

func (m memInstances) Add(ctx context.Context, inst domain.TrainingInstance) (int64, error) {
	m.s.nextInstanceID++
	inst.ID = m.s.nextInstanceID
	m.s.instances[inst.ID] = inst
	return inst.ID, nil
}

func (m memInstances) GetByDate(ctx context.Context, date time.Time) ([]domain.TrainingInstance, error) {
	var insts []domain.TrainingInstance
	for _, inst := range m.s.instances {
		if inst.Date.Format(time.DateOnly) == date.Format(time.DateOnly) {
			insts = append(insts, inst)
		}
	}
	sort.Slice(insts, func(i, j int) bool {
		if insts[i].StartTime != insts[j].StartTime {
			return insts[i].StartTime < insts[j].StartTime
		}
		return insts[i].ID < insts[j].ID
	})
	return insts, nil
}

func (m memInstances) GetByID(ctx context.Context, id int64) (domain.TrainingInstance, error) {
	inst, ok := m.s.instances[id]
	if !ok {
		return domain.TrainingInstance{}, fmt.Errorf("training_instance %d: %w", id, domain.ErrNotFound)
	}
	return inst, nil
}

func (m memInstances) GetByIDForUpdate(ctx context.Context, id int64) (domain.TrainingInstance, error) {
	return m.GetByID(ctx, id)
}

func (m memInstances) Update(ctx context.Context, inst domain.TrainingInstance) error {
	if _, ok := m.s.instances[inst.ID]; !ok {
		return fmt.Errorf("training_instance %d: %w", inst.ID, domain.ErrNotFound)
	}
	m.s.instances[inst.ID] = inst
	return nil
}

type memChangeLog struct{ s *memStore }

func (m memChangeLog) Add(ctx context.Context, entry domain.ChangeLogEntry) (int64, error) {
	m.s.nextLogID++
	entry.ID = m.s.nextLogID
	m.s.logEntries = append(m.s.logEntries, entry)
	return entry.ID, nil
}

func (m memChangeLog) GetByTraining(ctx context.Context, trainingID int64) ([]domain.ChangeLogEntry, error) {
	var entries []domain.ChangeLogEntry
	for _, e := range m.s.logEntries {
		if e.TrainingID == trainingID {
			entries = append(entries, e)
		}
	}
	sortNewestFirst(entries)
	return entries, nil
}

func (m memChangeLog) GetAll(ctx context.Context, limit int) ([]domain.ChangeLogEntry, error) {
	entries := make([]domain.ChangeLogEntry, len(m.s.logEntries))
	copy(entries, m.s.logEntries)
	sortNewestFirst(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func sortNewestFirst(entries []domain.ChangeLogEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
}

// memTx satisfies txManager; the in-memory store has no transactions,
// so the callback runs directly.
type memTx struct{}

func (memTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (memTx) LockKey(ctx context.Context, key string) error { return nil }

// logsFor counts change-log rows for one instance id.
func (m *memStore) logsFor(id int64) []domain.ChangeLogEntry {
	var entries []domain.ChangeLogEntry
	for _, e := range m.logEntries {
		if e.TrainingID == id {
			entries = append(entries, e)
		}
	}
	return entries
}

package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	consultstore "github.com/dalemusser/consultadmin/internal/app/store/consultations"
	"github.com/dalemusser/consultadmin/internal/app/system/paging"
	"github.com/dalemusser/consultadmin/internal/app/system/search"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-memory stand-in for the consultation store. It follows
// the same ordering, paging and search rules over the default search
// fields, which lets handler and client tests run without MongoDB.
type MemStore struct {
	mu   sync.Mutex
	recs map[models.Role][]models.Record

	// Err, when set, is returned by every call.
	Err error
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{recs: make(map[models.Role][]models.Record)}
}

// AddEmployer stores c and returns it.
func (m *MemStore) AddEmployer(c models.EmployerConsultation) models.EmployerConsultation {
	m.add(models.EmployerRecord(c))
	return c
}

// AddSeeker stores c and returns it.
func (m *MemStore) AddSeeker(c models.SeekerConsultation) models.SeekerConsultation {
	m.add(models.SeekerRecord(c))
	return c
}

func (m *MemStore) add(r models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[r.Role] = append(m.recs[r.Role], r)
}

// Len returns how many records role holds.
func (m *MemStore) Len(role models.Role) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs[role])
}

// List mirrors consultstore.Store.List.
func (m *MemStore) List(_ context.Context, role models.Role, q string, page, limit int) ([]models.Record, int64, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	m.mu.Lock()
	var matched []models.Record
	q = strings.ToLower(search.Normalize(q))
	for _, r := range m.recs[role] {
		if q == "" || matches(r, q) {
			matched = append(matched, r)
		}
	}
	m.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		at, bt := a.CreatedAt(), b.CreatedAt()
		switch {
		case at != nil && bt != nil && !at.Equal(*bt):
			return at.After(*bt)
		case at != nil && bt == nil:
			return true
		case at == nil && bt != nil:
			return false
		}
		return a.ID().Hex() > b.ID().Hex()
	})

	total := int64(len(matched))
	start := paging.Skip(page, limit)
	if start >= total {
		return []models.Record{}, total, nil
	}
	end := start + int64(limit)
	if end > total {
		end = total
	}
	out := make([]models.Record, end-start)
	copy(out, matched[start:end])
	return out, total, nil
}

// Get mirrors consultstore.Store.Get.
func (m *MemStore) Get(_ context.Context, role models.Role, id primitive.ObjectID) (models.Record, error) {
	if m.Err != nil {
		return models.Record{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs[role] {
		if r.ID() == id {
			return r, nil
		}
	}
	return models.Record{}, consultstore.ErrNotFound
}

// Delete mirrors consultstore.Store.Delete.
func (m *MemStore) Delete(_ context.Context, role models.Role, id primitive.ObjectID) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := m.recs[role]
	for i, r := range rs {
		if r.ID() == id {
			m.recs[role] = append(rs[:i:i], rs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func matches(r models.Record, q string) bool {
	var fields []string
	switch {
	case r.Employer != nil && r.Employer.BasicInfo != nil:
		b := r.Employer.BasicInfo
		fields = []string{b.CompanyName, b.CEOName, b.ManagerName}
	case r.Seeker != nil && r.Seeker.BasicInfo != nil:
		fields = []string{r.Seeker.BasicInfo.Name}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

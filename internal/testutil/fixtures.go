package testutil

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Employer builds an employer consultation with typical intake values.
// createdAt is now minus age so tests can control ordering.
func Employer(company, manager string, age time.Duration) models.EmployerConsultation {
	created := time.Now().UTC().Add(-age).Truncate(time.Millisecond)
	return models.EmployerConsultation{
		ID: primitive.NewObjectID(),
		BasicInfo: &models.EmployerBasicInfo{
			CompanyName:        company,
			CEOName:            "CEO of " + company,
			BizRegNumber:       "123-45-67890",
			ManagerName:        manager,
			ManagerEmailID:     "hr",
			ManagerEmailDomain: "example.com",
			Phone1:             "010",
			Phone2:             "1234",
			Phone3:             "5678",
		},
		Conditions: &models.EmployerConditions{
			Task:      "Assembly",
			WorkDays:  []string{"mon", "tue", "wed"},
			StartTime: "09:00",
			EndTime:   "18:00",
			JobTypes:  []string{"full-time"},
			SalaryRaw: "2500000",
		},
		Additional: &models.EmployerAdditional{
			Careers:      []string{"none"},
			KoreanLevels: []string{"basic"},
			Preference:   "Night shift available",
		},
		CreatedAt: &created,
	}
}

// Seeker builds a seeker consultation.
func Seeker(name, country string, age time.Duration) models.SeekerConsultation {
	created := time.Now().UTC().Add(-age).Truncate(time.Millisecond)
	return models.SeekerConsultation{
		ID: primitive.NewObjectID(),
		BasicInfo: &models.SeekerBasicInfo{
			Name:   name,
			Birth:  &models.Birth{Year: "1994", Month: "3", Day: "7"},
			Gender: "female",
			Phone:  &models.SeekerPhone{P1: "010", P2: "9876", P3: "5432"},
		},
		Consultation: &models.SeekerConsultDetail{
			Country: &models.LabeledValue{Label: country, Value: "vn"},
			Lang:    &models.LabeledValue{Label: "Vietnamese", Value: "vi"},
			Channel: "kakao",
		},
		CreatedAt: &created,
	}
}

// CreateEmployer inserts an employer consultation.
func (f *Fixtures) CreateEmployer(ctx context.Context, c models.EmployerConsultation) models.EmployerConsultation {
	f.t.Helper()
	if _, err := f.db.Collection(models.RoleEmployer.Collection()).InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test employer: %v", err)
	}
	return c
}

// CreateSeeker inserts a seeker consultation.
func (f *Fixtures) CreateSeeker(ctx context.Context, c models.SeekerConsultation) models.SeekerConsultation {
	f.t.Helper()
	if _, err := f.db.Collection(models.RoleSeeker.Collection()).InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test seeker: %v", err)
	}
	return c
}

// CreateEmployers inserts n employers named "Company 1".."Company n", the
// first being the newest.
func (f *Fixtures) CreateEmployers(ctx context.Context, n int) []models.EmployerConsultation {
	f.t.Helper()
	out := make([]models.EmployerConsultation, 0, n)
	for i := 1; i <= n; i++ {
		c := Employer(companyName(i), "Manager", time.Duration(i)*time.Minute)
		out = append(out, f.CreateEmployer(ctx, c))
	}
	return out
}

func companyName(i int) string {
	return "Company " + strconv.Itoa(i)
}

// internal/app/store/consultations/consultstore.go
package consultstore

import (
	"context"
	"errors"

	"github.com/dalemusser/consultadmin/internal/app/system/paging"
	"github.com/dalemusser/consultadmin/internal/app/system/search"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by Get when no document has the id.
var ErrNotFound = errors.New("consultation not found")

// DatabaseSource hands out the database handle per call. The server passes
// its *mongoconn.Provider so the connection is opened on first use.
type DatabaseSource interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

type staticSource struct{ db *mongo.Database }

func (s staticSource) Database(context.Context) (*mongo.Database, error) { return s.db, nil }

// Static wraps an already-open database.
func Static(db *mongo.Database) DatabaseSource { return staticSource{db: db} }

// Store reads and deletes consultations in the employer and seeker
// collections. It never writes; documents come from the intake site.
type Store struct {
	src    DatabaseSource
	fields search.Fields
}

// New builds a Store. A nil fields map uses search.DefaultFields.
func New(src DatabaseSource, fields search.Fields) *Store {
	if fields == nil {
		fields = search.DefaultFields()
	}
	return &Store{src: src, fields: fields}
}

func (s *Store) coll(ctx context.Context, role models.Role) (*mongo.Collection, error) {
	db, err := s.src.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(role.Collection()), nil
}

// List returns one page of role's consultations, newest first, along with
// the number of documents matching q across all pages.
func (s *Store) List(ctx context.Context, role models.Role, q string, page, limit int) ([]models.Record, int64, error) {
	c, err := s.coll(ctx, role)
	if err != nil {
		return nil, 0, err
	}
	filter := s.fields.Filter(role, q)

	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if paging.Skip(page, limit) >= total {
		return []models.Record{}, total, nil
	}

	find := options.Find()
	paging.ApplyToFind(find, page, limit)
	cur, err := c.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := make([]models.Record, 0, limit)
	for cur.Next(ctx) {
		rec, err := decode(role, cur)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get loads a single consultation by id.
func (s *Store) Get(ctx context.Context, role models.Role, id primitive.ObjectID) (models.Record, error) {
	c, err := s.coll(ctx, role)
	if err != nil {
		return models.Record{}, err
	}
	res := c.FindOne(ctx, bson.M{"_id": id})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, err
	}
	return decode(role, res)
}

// Delete removes a consultation by id. It returns the number of documents
// removed, 0 or 1.
func (s *Store) Delete(ctx context.Context, role models.Role, id primitive.ObjectID) (int64, error) {
	c, err := s.coll(ctx, role)
	if err != nil {
		return 0, err
	}
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type decoder interface {
	Decode(v interface{}) error
}

func decode(role models.Role, d decoder) (models.Record, error) {
	if role == models.RoleEmployer {
		var c models.EmployerConsultation
		if err := d.Decode(&c); err != nil {
			return models.Record{}, err
		}
		return models.EmployerRecord(c), nil
	}
	var c models.SeekerConsultation
	if err := d.Decode(&c); err != nil {
		return models.Record{}, err
	}
	return models.SeekerRecord(c), nil
}

package adminclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/consultadmin/internal/adminclient"
	"github.com/dalemusser/consultadmin/internal/app/features/consultations"
	apierrors "github.com/dalemusser/consultadmin/internal/app/features/errors"
	"github.com/dalemusser/consultadmin/internal/app/system/apperr"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/dalemusser/consultadmin/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newServer(t *testing.T, mem *testutil.MemStore) *adminclient.Client {
	t.Helper()
	logger := zap.NewNop()
	h := consultations.NewHandler(mem, 0, apierrors.NewErrorLogger(logger), logger)
	r := chi.NewRouter()
	r.Mount("/api/consultation", consultations.Routes(h))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := adminclient.New(srv.URL + "/")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_RejectsNonHTTP(t *testing.T) {
	for _, u := range []string{"ftp://host", "localhost:8080", "://bad"} {
		if _, err := adminclient.New(u); err == nil {
			t.Errorf("New(%q) should fail", u)
		}
	}
}

func TestClient_ListDetailDelete(t *testing.T) {
	mem := testutil.NewMemStore()
	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		c := mem.AddEmployer(testutil.Employer("Hanbit Foods", "Lee", time.Duration(i+1)*time.Minute))
		ids = append(ids, c.ID)
	}
	c := newServer(t, mem)
	ctx := context.Background()

	page, err := c.List(ctx, adminclient.ListQuery{Role: models.RoleEmployer, Page: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Items) != 3 || page.Total != 3 {
		t.Fatalf("List: %d items, total %d", len(page.Items), page.Total)
	}
	if page.Items[0].Role != models.RoleEmployer || page.Items[0].Title() != "Hanbit Foods" {
		t.Errorf("first item = %+v", page.Items[0])
	}
	if page.Items[0].ID() != ids[0] {
		t.Errorf("first id = %s, want %s", page.Items[0].ID().Hex(), ids[0].Hex())
	}

	rec, err := c.Detail(ctx, models.RoleEmployer, ids[1].Hex())
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if got := rec.Employer.BasicInfo.ManagerEmail(); got != "hr@example.com" {
		t.Errorf("ManagerEmail = %q", got)
	}

	if err := c.Delete(ctx, models.RoleEmployer, ids[1].Hex()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Detail(ctx, models.RoleEmployer, ids[1].Hex()); !apperr.IsNotFound(err) {
		t.Errorf("Detail after delete: err = %v, want not found", err)
	}
	if err := c.Delete(ctx, models.RoleEmployer, ids[1].Hex()); !apperr.IsNotFound(err) {
		t.Errorf("second Delete: err = %v, want not found", err)
	}
}

func TestClient_ListSearchAndLimit(t *testing.T) {
	mem := testutil.NewMemStore()
	mem.AddSeeker(testutil.Seeker("Nguyen An", "Vietnam", time.Minute))
	mem.AddSeeker(testutil.Seeker("Tran Binh", "Vietnam", 2*time.Minute))
	c := newServer(t, mem)

	page, err := c.List(context.Background(), adminclient.ListQuery{Role: models.RoleSeeker, Q: "an b", Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Title() != "Tran Binh" {
		t.Errorf("page = %+v", page)
	}
	if page.Limit != 1 {
		t.Errorf("limit = %d", page.Limit)
	}
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, http.StatusInternalServerError, "Missing MongoDB connection string (mongo_uri)")
	}))
	defer srv.Close()

	c, err := adminclient.New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = c.List(context.Background(), adminclient.ListQuery{Role: models.RoleEmployer})
	if apperr.KindOf(err) != apperr.KindInfrastructure {
		t.Fatalf("kind = %v", apperr.KindOf(err))
	}
	if got := apperr.PublicMessage(err); got != "Missing MongoDB connection string (mongo_uri)" {
		t.Errorf("message = %q", got)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := adminclient.New(url)
	if err := c.Delete(context.Background(), models.RoleSeeker, primitive.NewObjectID().Hex()); err == nil {
		t.Fatal("expected error from closed server")
	}
}

package consultations_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/consultadmin/internal/app/features/consultations"
	apierrors "github.com/dalemusser/consultadmin/internal/app/features/errors"
	consultstore "github.com/dalemusser/consultadmin/internal/app/store/consultations"
	"github.com/dalemusser/consultadmin/internal/app/system/mongoconn"
	"github.com/dalemusser/consultadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/consultadmin/internal/app/system/requestid"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/dalemusser/consultadmin/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newRouter(store consultations.Store) http.Handler {
	logger := zap.NewNop()
	h := consultations.NewHandler(store, 0, apierrors.NewErrorLogger(logger), logger)
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Mount("/api/consultation", consultations.Routes(h))
	return r
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s %s: invalid JSON %q: %v", method, target, rec.Body.String(), err)
	}
	return rec, body
}

func seedEmployers(m *testutil.MemStore, n int) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, n)
	for i := 0; i < n; i++ {
		c := m.AddEmployer(testutil.Employer("Company", "Manager", time.Duration(i+1)*time.Minute))
		ids = append(ids, c.ID)
	}
	return ids
}

func TestScenario_ListDeleteDetail(t *testing.T) {
	mem := testutil.NewMemStore()
	ids := seedEmployers(mem, 3)
	h := newRouter(mem)

	rec, body := do(t, h, http.MethodGet, "/api/consultation/list?role=employer&page=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if got := len(body["items"].([]any)); got != 3 {
		t.Errorf("items = %d, want 3", got)
	}
	if body["total"].(float64) != 3 {
		t.Errorf("total = %v, want 3", body["total"])
	}

	rec, body = do(t, h, http.MethodDelete, "/api/consultation/delete?role=employer&id="+ids[1].Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %v", rec.Code, body)
	}
	if body["success"] != true || body["deletedId"] != ids[1].Hex() {
		t.Errorf("delete body = %v", body)
	}

	_, body = do(t, h, http.MethodGet, "/api/consultation/list?role=employer&page=1")
	if got := len(body["items"].([]any)); got != 2 {
		t.Errorf("items after delete = %d, want 2", got)
	}
	if body["total"].(float64) != 2 {
		t.Errorf("total after delete = %v, want 2", body["total"])
	}

	rec, _ = do(t, h, http.MethodGet, "/api/consultation/detail?role=employer&id="+ids[1].Hex())
	if rec.Code != http.StatusNotFound {
		t.Errorf("detail of deleted: status = %d, want 404", rec.Code)
	}
}

func TestList_EmptyCollectionItemsNotNull(t *testing.T) {
	h := newRouter(testutil.NewMemStore())
	rec, body := do(t, h, http.MethodGet, "/api/consultation/list?role=seeker")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	items, ok := body["items"].([]any)
	if !ok || len(items) != 0 {
		t.Errorf("items = %#v, want []", body["items"])
	}
}

func TestList_UnknownRoleFallsBackToSeeker(t *testing.T) {
	mem := testutil.NewMemStore()
	seedEmployers(mem, 2)
	mem.AddSeeker(testutil.Seeker("Nguyen An", "Vietnam", time.Minute))
	h := newRouter(mem)

	for _, role := range []string{"seeker", "", "Employers", "admin"} {
		_, body := do(t, h, http.MethodGet, "/api/consultation/list?role="+role)
		if body["total"].(float64) != 1 {
			t.Errorf("role %q: total = %v, want 1 (seeker)", role, body["total"])
		}
	}
}

func TestList_LimitAndPaging(t *testing.T) {
	mem := testutil.NewMemStore()
	seedEmployers(mem, 5)
	h := newRouter(mem)

	_, body := do(t, h, http.MethodGet, "/api/consultation/list?role=employer&page=2&limit=2")
	if got := len(body["items"].([]any)); got != 2 {
		t.Errorf("items = %d, want 2", got)
	}
	if body["total"].(float64) != 5 {
		t.Errorf("total = %v, want 5", body["total"])
	}

	_, body = do(t, h, http.MethodGet, "/api/consultation/list?role=employer&page=9&limit=2")
	if got := len(body["items"].([]any)); got != 0 {
		t.Errorf("past last page: items = %d", got)
	}
	if body["total"].(float64) != 5 {
		t.Errorf("past last page: total = %v", body["total"])
	}

	_, body = do(t, h, http.MethodGet, "/api/consultation/list?role=employer&limit=1000")
	if body["limit"].(float64) != 100 {
		t.Errorf("limit = %v, want clamp to 100", body["limit"])
	}
}

func TestList_HugePageIsEmpty(t *testing.T) {
	mem := testutil.NewMemStore()
	seedEmployers(mem, 3)
	h := newRouter(mem)

	rec, body := do(t, h, http.MethodGet, "/api/consultation/list?role=employer&page=9223372036854775807&limit=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := len(body["items"].([]any)); got != 0 {
		t.Errorf("items = %d, want 0", got)
	}
	if body["total"].(float64) != 3 {
		t.Errorf("total = %v, want 3", body["total"])
	}
}

func TestList_SearchEmptyMatchesAll(t *testing.T) {
	mem := testutil.NewMemStore()
	mem.AddEmployer(testutil.Employer("Hanbit Foods", "Lee", time.Minute))
	mem.AddEmployer(testutil.Employer("Daehan Steel", "Park", 2*time.Minute))
	h := newRouter(mem)

	_, all := do(t, h, http.MethodGet, "/api/consultation/list?role=employer")
	_, empty := do(t, h, http.MethodGet, "/api/consultation/list?role=employer&q=")
	if all["total"] != empty["total"] {
		t.Errorf("empty q total %v != no q total %v", empty["total"], all["total"])
	}
	_, hit := do(t, h, http.MethodGet, "/api/consultation/list?role=employer&q=hanbit")
	if hit["total"].(float64) != 1 {
		t.Errorf("q=hanbit total = %v, want 1", hit["total"])
	}
}

func TestDetail(t *testing.T) {
	mem := testutil.NewMemStore()
	s := mem.AddSeeker(testutil.Seeker("Nguyen An", "Vietnam", time.Minute))
	h := newRouter(mem)

	rec, body := do(t, h, http.MethodGet, "/api/consultation/detail?role=seeker&id="+s.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	item := body["item"].(map[string]any)
	if item["_id"] != s.ID.Hex() {
		t.Errorf("_id = %v", item["_id"])
	}
	basic := item["basicInfo"].(map[string]any)
	if basic["name"] != "Nguyen An" {
		t.Errorf("name = %v", basic["name"])
	}
}

func TestDetail_NotFoundCases(t *testing.T) {
	h := newRouter(testutil.NewMemStore())
	targets := []string{
		"/api/consultation/detail?role=seeker&id=not-an-id",
		"/api/consultation/detail?role=seeker",
		"/api/consultation/detail?role=employer&id=" + primitive.NewObjectID().Hex(),
	}
	for _, target := range targets {
		rec, body := do(t, h, http.MethodGet, target)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", target, rec.Code)
		}
		if body["message"] != "Not found" {
			t.Errorf("%s: message = %v", target, body["message"])
		}
	}
}

func TestDelete_Validation(t *testing.T) {
	mem := testutil.NewMemStore()
	ids := seedEmployers(mem, 1)
	h := newRouter(mem)

	tests := []struct {
		target string
		status int
		msg    string
	}{
		{"/api/consultation/delete?id=" + ids[0].Hex(), http.StatusBadRequest, "Missing role"},
		{"/api/consultation/delete?role=employer", http.StatusBadRequest, "Missing id"},
		{"/api/consultation/delete?role=employer&id=zzz", http.StatusNotFound, "Not found"},
		{"/api/consultation/delete?role=employer&id=" + primitive.NewObjectID().Hex(), http.StatusNotFound, "Not found"},
		// Right id, wrong collection.
		{"/api/consultation/delete?role=seeker&id=" + ids[0].Hex(), http.StatusNotFound, "Not found"},
	}
	for _, tt := range tests {
		rec, body := do(t, h, http.MethodDelete, tt.target)
		if rec.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.target, rec.Code, tt.status)
		}
		if body["message"] != tt.msg {
			t.Errorf("%s: message = %v, want %q", tt.target, body["message"], tt.msg)
		}
		if body["success"] != false {
			t.Errorf("%s: success = %v, want false", tt.target, body["success"])
		}
	}
	if mem.Len("employer") != 1 {
		t.Errorf("failed deletes removed records: %d left", mem.Len("employer"))
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newRouter(testutil.NewMemStore())
	tests := []struct {
		method, target, allow string
	}{
		{http.MethodPost, "/api/consultation/list", http.MethodGet},
		{http.MethodDelete, "/api/consultation/detail", http.MethodGet},
		{http.MethodGet, "/api/consultation/delete?role=employer&id=x", http.MethodDelete},
	}
	for _, tt := range tests {
		rec, body := do(t, h, tt.method, tt.target)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, want 405", tt.method, tt.target, rec.Code)
		}
		if body["message"] != "Method Not Allowed" {
			t.Errorf("%s %s: message = %v", tt.method, tt.target, body["message"])
		}
		if got := rec.Header().Get("Allow"); got != tt.allow {
			t.Errorf("%s %s: Allow = %q, want %q", tt.method, tt.target, got, tt.allow)
		}
	}
}

func TestStoreFailure_Generic500(t *testing.T) {
	mem := testutil.NewMemStore()
	mem.Err = errors.New("connection reset")
	h := newRouter(mem)

	rec, body := do(t, h, http.MethodGet, "/api/consultation/list?role=employer")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["message"] != "Internal Server Error" {
		t.Errorf("message = %v", body["message"])
	}
	if body["requestId"] != rec.Header().Get(requestid.Header) {
		t.Errorf("requestId %v does not match header", body["requestId"])
	}

	rec, body = do(t, h, http.MethodDelete, "/api/consultation/delete?role=employer&id="+primitive.NewObjectID().Hex())
	if rec.Code != http.StatusInternalServerError || body["success"] != false {
		t.Errorf("delete failure: status %d body %v", rec.Code, body)
	}
}

func TestMissingURI(t *testing.T) {
	provider := mongoconn.New(mongoconn.Config{}, zap.NewNop())
	h := newRouter(consultstore.New(provider, nil))

	for _, tt := range []struct{ method, target string }{
		{http.MethodGet, "/api/consultation/list?role=employer"},
		{http.MethodGet, "/api/consultation/detail?role=employer&id=" + primitive.NewObjectID().Hex()},
		{http.MethodDelete, "/api/consultation/delete?role=employer&id=" + primitive.NewObjectID().Hex()},
	} {
		rec, body := do(t, h, tt.method, tt.target)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, want 500", tt.target, rec.Code)
		}
		if body["message"] != "Missing MongoDB connection string (mongo_uri)" {
			t.Errorf("%s: message = %v", tt.target, body["message"])
		}
	}
}

func TestDelete_RateLimited(t *testing.T) {
	mem := testutil.NewMemStore()
	ids := seedEmployers(mem, 2)
	logger := zap.NewNop()
	h := consultations.NewHandler(mem, 0, apierrors.NewErrorLogger(logger), logger)
	h.DeleteLimiter = ratelimit.New(1, time.Minute)
	defer h.DeleteLimiter.Close()
	r := chi.NewRouter()
	r.Mount("/api/consultation", consultations.Routes(h))

	rec, _ := do(t, r, http.MethodDelete, "/api/consultation/delete?role=employer&id="+ids[0].Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("first delete status = %d", rec.Code)
	}
	rec, body := do(t, r, http.MethodDelete, "/api/consultation/delete?role=employer&id="+ids[1].Hex())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second delete status = %d, want 429", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if mem.Len(models.RoleEmployer) != 1 {
		t.Errorf("limited delete should not reach the store")
	}
	// Reads are not limited.
	if rec, _ := do(t, r, http.MethodGet, "/api/consultation/list?role=employer"); rec.Code != http.StatusOK {
		t.Errorf("list status = %d", rec.Code)
	}
}

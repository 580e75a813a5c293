package search

import (
	"strings"
	"testing"

	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilter_EmptyQueryMatchesAll(t *testing.T) {
	f := DefaultFields()
	for _, q := range []string{"", "   ", "\t\n"} {
		if got := f.Filter(models.RoleEmployer, q); len(got) != 0 {
			t.Errorf("Filter(%q) = %v, want empty filter", q, got)
		}
	}
}

func TestFilter_EmployerFields(t *testing.T) {
	got := DefaultFields().Filter(models.RoleEmployer, "  hanbit  ")
	or, ok := got["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected $or clause, got %#v", got)
	}
	if len(or) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(or))
	}
	rx, ok := or[0]["basicInfo.companyName"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex on companyName, got %#v", or[0])
	}
	if rx.Pattern != "hanbit" || rx.Options != "i" {
		t.Errorf("regex = %+v", rx)
	}
}

func TestFilter_QuotesRegexMeta(t *testing.T) {
	got := DefaultFields().Filter(models.RoleSeeker, "a.b*(c)")
	or := got["$or"].([]bson.M)
	if len(or) != 1 {
		t.Fatalf("expected 1 seeker field, got %d", len(or))
	}
	rx := or[0]["basicInfo.name"].(primitive.Regex)
	if rx.Pattern != `a\.b\*\(c\)` {
		t.Errorf("pattern = %q", rx.Pattern)
	}
}

func TestFields_ForFallsBack(t *testing.T) {
	f := Fields{models.RoleSeeker: {"consultation.channel"}}
	if got := f.For(models.RoleSeeker); len(got) != 1 || got[0] != "consultation.channel" {
		t.Errorf("seeker fields = %v", got)
	}
	if got := f.For(models.RoleEmployer); len(got) != 3 {
		t.Errorf("employer should fall back to defaults, got %v", got)
	}
}

func TestParseFieldList(t *testing.T) {
	got := ParseFieldList(" basicInfo.name, ,consultation.channel ,")
	if len(got) != 2 || got[0] != "basicInfo.name" || got[1] != "consultation.channel" {
		t.Errorf("ParseFieldList = %v", got)
	}
	if got := ParseFieldList(""); len(got) != 0 {
		t.Errorf("ParseFieldList(\"\") = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  kim   min  su "); got != "kim min su" {
		t.Errorf("Normalize = %q", got)
	}
	long := strings.Repeat("가", MaxQueryLen+20)
	if got := []rune(Normalize(long)); len(got) != MaxQueryLen {
		t.Errorf("Normalize length = %d, want %d", len(got), MaxQueryLen)
	}
}

// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxQueryLen caps the free-text query, in runes.
const MaxQueryLen = 100

// Fields maps each role to the document paths the free-text query is
// matched against.
type Fields map[models.Role][]string

// DefaultFields returns the fields searched when nothing is configured:
// company, CEO and manager names for employers; the applicant name for
// seekers.
func DefaultFields() Fields {
	return Fields{
		models.RoleEmployer: {
			"basicInfo.companyName",
			"basicInfo.ceoName",
			"basicInfo.managerName",
		},
		models.RoleSeeker: {
			"basicInfo.name",
		},
	}
}

// For returns the fields for role, falling back to the defaults when the
// role has none configured.
func (f Fields) For(role models.Role) []string {
	if fs := f[role]; len(fs) > 0 {
		return fs
	}
	return DefaultFields()[role]
}

// ParseFieldList splits a comma separated list of document paths, dropping
// blanks.
//
//	ParseFieldList("basicInfo.name, consultation.channel")
func ParseFieldList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Normalize trims the query, collapses inner whitespace and truncates it
// to MaxQueryLen runes.
func Normalize(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	if r := []rune(q); len(r) > MaxQueryLen {
		q = string(r[:MaxQueryLen])
	}
	return q
}

// Filter builds the Mongo filter for q over role's fields. An empty query
// matches the whole collection. Matching is a case-insensitive substring
// test; q is regex-quoted so user input is always literal.
func (f Fields) Filter(role models.Role, q string) bson.M {
	q = Normalize(q)
	if q == "" {
		return bson.M{}
	}
	rx := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	fields := f.For(role)
	or := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: rx})
	}
	return bson.M{"$or": or}
}

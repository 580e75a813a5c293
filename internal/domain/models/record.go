package models

import (
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is a consultation of either kind. Exactly one of Employer or
// Seeker is set, matching Role.
type Record struct {
	Role     Role
	Employer *EmployerConsultation
	Seeker   *SeekerConsultation
}

// EmployerRecord wraps an employer consultation.
func EmployerRecord(c EmployerConsultation) Record {
	return Record{Role: RoleEmployer, Employer: &c}
}

// SeekerRecord wraps a seeker consultation.
func SeekerRecord(c SeekerConsultation) Record {
	return Record{Role: RoleSeeker, Seeker: &c}
}

// ID returns the record's ObjectID, or NilObjectID for an empty record.
func (r Record) ID() primitive.ObjectID {
	switch {
	case r.Employer != nil:
		return r.Employer.ID
	case r.Seeker != nil:
		return r.Seeker.ID
	}
	return primitive.NilObjectID
}

// CreatedAt returns the submission time, nil when unknown.
func (r Record) CreatedAt() *time.Time {
	switch {
	case r.Employer != nil:
		return r.Employer.CreatedAt
	case r.Seeker != nil:
		return r.Seeker.CreatedAt
	}
	return nil
}

// Title is the headline shown for the record: company name for employers,
// the applicant's name for seekers.
func (r Record) Title() string {
	switch {
	case r.Employer != nil && r.Employer.BasicInfo != nil:
		return r.Employer.BasicInfo.CompanyName
	case r.Seeker != nil && r.Seeker.BasicInfo != nil:
		return r.Seeker.BasicInfo.Name
	}
	return ""
}

// IsZero reports whether neither variant is set.
func (r Record) IsZero() bool {
	return r.Employer == nil && r.Seeker == nil
}

// MarshalJSON writes the variant document as-is so the wire shape matches
// what the intake site stored.
func (r Record) MarshalJSON() ([]byte, error) {
	switch {
	case r.Employer != nil:
		return json.Marshal(r.Employer)
	case r.Seeker != nil:
		return json.Marshal(r.Seeker)
	}
	return []byte("null"), nil
}

// ErrEmptyRecord is returned when decoding a JSON null as a record.
var ErrEmptyRecord = errors.New("models: empty record")

// DecodeRecord rebuilds a Record from its JSON document. The role is not
// part of the document, so the caller supplies it.
func DecodeRecord(role Role, data []byte) (Record, error) {
	if string(data) == "null" || len(data) == 0 {
		return Record{}, ErrEmptyRecord
	}
	if role == RoleEmployer {
		var c EmployerConsultation
		if err := json.Unmarshal(data, &c); err != nil {
			return Record{}, err
		}
		return EmployerRecord(c), nil
	}
	var c SeekerConsultation
	if err := json.Unmarshal(data, &c); err != nil {
		return Record{}, err
	}
	return SeekerRecord(c), nil
}

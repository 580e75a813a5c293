package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Consultation documents are written by the intake site, so field names
// follow its camelCase JSON rather than the snake_case used elsewhere.
// Every group is a pointer and every leaf may be empty.

// EmployerConsultation is one employer intake submission (collection "employer").
type EmployerConsultation struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	BasicInfo  *EmployerBasicInfo  `bson:"basicInfo,omitempty" json:"basicInfo,omitempty"`
	Conditions *EmployerConditions `bson:"conditions,omitempty" json:"conditions,omitempty"`
	Additional *EmployerAdditional `bson:"additional,omitempty" json:"additional,omitempty"`
	CreatedAt  *time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type EmployerBasicInfo struct {
	CompanyName        string     `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CEOName            string     `bson:"ceoName,omitempty" json:"ceoName,omitempty"`
	BizRegNumber       string     `bson:"bizRegNumber,omitempty" json:"bizRegNumber,omitempty"`
	ManagerName        string     `bson:"managerName,omitempty" json:"managerName,omitempty"`
	ManagerEmailID     string     `bson:"managerEmailId,omitempty" json:"managerEmailId,omitempty"`
	ManagerEmailDomain string     `bson:"managerEmailDomain,omitempty" json:"managerEmailDomain,omitempty"`
	Phone1             FlexString `bson:"phone1,omitempty" json:"phone1,omitempty"`
	Phone2             FlexString `bson:"phone2,omitempty" json:"phone2,omitempty"`
	Phone3             FlexString `bson:"phone3,omitempty" json:"phone3,omitempty"`
}

type EmployerConditions struct {
	Task      string     `bson:"task,omitempty" json:"task,omitempty"`
	WorkDays  []string   `bson:"workDays,omitempty" json:"workDays,omitempty"` // ordered as picked
	StartTime string     `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   string     `bson:"endTime,omitempty" json:"endTime,omitempty"`
	JobTypes  []string   `bson:"jobTypes,omitempty" json:"jobTypes,omitempty"`
	SalaryRaw FlexString `bson:"salaryRaw,omitempty" json:"salaryRaw,omitempty"`
}

type EmployerAdditional struct {
	Careers      []string `bson:"careers,omitempty" json:"careers,omitempty"`
	Welfares     []string `bson:"welfares,omitempty" json:"welfares,omitempty"`
	KoreanLevels []string `bson:"koreanLevels,omitempty" json:"koreanLevels,omitempty"`
	Preference   string   `bson:"preference,omitempty" json:"preference,omitempty"`
}

// ManagerEmail joins the split email fields, or returns "" unless both
// halves are present.
func (b *EmployerBasicInfo) ManagerEmail() string {
	if b == nil || b.ManagerEmailID == "" || b.ManagerEmailDomain == "" {
		return ""
	}
	return b.ManagerEmailID + "@" + b.ManagerEmailDomain
}

// PhoneParts returns the three phone segments in order.
func (b *EmployerBasicInfo) PhoneParts() []string {
	if b == nil {
		return nil
	}
	return []string{b.Phone1.String(), b.Phone2.String(), b.Phone3.String()}
}

// SeekerConsultation is one job seeker intake submission (collection "seeker").
type SeekerConsultation struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	BasicInfo    *SeekerBasicInfo     `bson:"basicInfo,omitempty" json:"basicInfo,omitempty"`
	Consultation *SeekerConsultDetail `bson:"consultation,omitempty" json:"consultation,omitempty"`
	CreatedAt    *time.Time           `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type SeekerBasicInfo struct {
	Name   string       `bson:"name,omitempty" json:"name,omitempty"`
	Birth  *Birth       `bson:"birth,omitempty" json:"birth,omitempty"`
	Gender string       `bson:"gender,omitempty" json:"gender,omitempty"`
	Phone  *SeekerPhone `bson:"phone,omitempty" json:"phone,omitempty"`
}

type Birth struct {
	Year  FlexString `bson:"year,omitempty" json:"year,omitempty"`
	Month FlexString `bson:"month,omitempty" json:"month,omitempty"`
	Day   FlexString `bson:"day,omitempty" json:"day,omitempty"`
}

// String renders the birth date as "Y-M-D", or "" when nothing was entered.
func (b *Birth) String() string {
	if b == nil || (b.Year == "" && b.Month == "" && b.Day == "") {
		return ""
	}
	return string(b.Year) + "-" + string(b.Month) + "-" + string(b.Day)
}

type SeekerPhone struct {
	P1 FlexString `bson:"p1,omitempty" json:"p1,omitempty"`
	P2 FlexString `bson:"p2,omitempty" json:"p2,omitempty"`
	P3 FlexString `bson:"p3,omitempty" json:"p3,omitempty"`
}

// Parts returns the three phone segments in order.
func (p *SeekerPhone) Parts() []string {
	if p == nil {
		return nil
	}
	return []string{p.P1.String(), p.P2.String(), p.P3.String()}
}

// LabeledValue is a select option as the intake form stored it.
type LabeledValue struct {
	Label string `bson:"label,omitempty" json:"label,omitempty"`
	Value string `bson:"value,omitempty" json:"value,omitempty"`
}

type SeekerConsultDetail struct {
	Country     *LabeledValue `bson:"country,omitempty" json:"country,omitempty"`
	Lang        *LabeledValue `bson:"lang,omitempty" json:"lang,omitempty"`
	Channel     string        `bson:"channel,omitempty" json:"channel,omitempty"`
	ChannelLink string        `bson:"channelLink,omitempty" json:"channelLink,omitempty"`
}

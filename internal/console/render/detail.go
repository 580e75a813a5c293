package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dalemusser/consultadmin/internal/domain/models"
)

type section struct {
	title string
	rows  [][2]string
}

// Detail writes the role-specific detail panel for rec.
func Detail(w io.Writer, rec models.Record) {
	switch {
	case rec.Employer != nil:
		writeSections(w, "Employer "+rec.ID().Hex(), employerSections(rec.Employer))
	case rec.Seeker != nil:
		writeSections(w, "Seeker "+rec.ID().Hex(), seekerSections(rec.Seeker))
	default:
		fmt.Fprintln(w, "(nothing selected)")
	}
}

func writeSections(w io.Writer, title string, secs []section) {
	fmt.Fprintln(w, title)
	for _, sec := range secs {
		fmt.Fprintf(w, "\n[%s]\n", sec.title)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, r := range sec.rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r[0], r[1])
		}
		_ = tw.Flush()
	}
}

func employerSections(e *models.EmployerConsultation) []section {
	b := e.BasicInfo
	if b == nil {
		b = &models.EmployerBasicInfo{}
	}
	c := e.Conditions
	if c == nil {
		c = &models.EmployerConditions{}
	}
	a := e.Additional
	if a == nil {
		a = &models.EmployerAdditional{}
	}
	return []section{
		{"Basic info", [][2]string{
			{"Company", Or(b.CompanyName)},
			{"CEO", Or(b.CEOName)},
			{"Business reg. no.", Or(b.BizRegNumber)},
			{"Manager", Or(b.ManagerName)},
			{"Email", Or(b.ManagerEmail())},
			{"Phone", Phone(b.PhoneParts())},
			{"Submitted", Date(e.CreatedAt)},
		}},
		{"Conditions", [][2]string{
			{"Task", Or(c.Task)},
			{"Work days", List(c.WorkDays)},
			{"Hours", Or(c.StartTime) + " ~ " + Or(c.EndTime)},
			{"Job types", List(c.JobTypes)},
			{"Salary (KRW)", Or(c.SalaryRaw.String())},
		}},
		{"Additional", [][2]string{
			{"Careers", List(a.Careers)},
			{"Welfare", List(a.Welfares)},
			{"Korean level", List(a.KoreanLevels)},
			{"Preference", Or(a.Preference)},
		}},
	}
}

func seekerSections(s *models.SeekerConsultation) []section {
	b := s.BasicInfo
	if b == nil {
		b = &models.SeekerBasicInfo{}
	}
	c := s.Consultation
	if c == nil {
		c = &models.SeekerConsultDetail{}
	}
	return []section{
		{"Basic info", [][2]string{
			{"Name", Or(b.Name)},
			{"Birth", Or(b.Birth.String())},
			{"Gender", Or(b.Gender)},
			{"Phone", Phone(b.Phone.Parts())},
			{"Submitted", Date(s.CreatedAt)},
		}},
		{"Consultation", [][2]string{
			{"Country", labeled(c.Country)},
			{"Language", labeled(c.Lang)},
			{"Channel", Or(c.Channel)},
			{"Link", Or(c.ChannelLink)},
		}},
	}
}

// labeled renders "Label (value)", or just the label when value is blank.
func labeled(v *models.LabeledValue) string {
	if v == nil {
		return Missing
	}
	out := Or(v.Label)
	if val := Clean(v.Value); val != "" {
		out += " (" + val + ")"
	}
	return out
}

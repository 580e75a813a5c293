package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dalemusser/consultadmin/internal/adminview"
	"github.com/dalemusser/consultadmin/internal/app/system/paging"
	"github.com/dalemusser/consultadmin/internal/domain/models"
)

// cellWidth caps free-text table cells.
const cellWidth = 28

func roleLabel(r models.Role) string {
	if r == models.RoleEmployer {
		return "Employer"
	}
	return "Seeker"
}

// Header writes the role, total and active search.
func Header(w io.Writer, s adminview.Snapshot) {
	line := fmt.Sprintf("%s consultations · %d total", roleLabel(s.Role), s.Total)
	if s.Query != "" {
		line += fmt.Sprintf(" · search %q", s.Query)
	}
	fmt.Fprintln(w, line)
}

// Pagination writes "page X / Y", the row range and a loading marker.
func Pagination(w io.Writer, s adminview.Snapshot) {
	rng := paging.ComputeRange(s.Page, s.Limit, len(s.Items))
	line := fmt.Sprintf("page %d / %d", s.Page, paging.TotalPages(s.Total, s.Limit))
	if rng.Start > 0 {
		line += fmt.Sprintf(" · rows %d-%d", rng.Start, rng.End)
	} else {
		line += " · no rows"
	}
	switch s.State {
	case adminview.ListLoading, adminview.DetailLoading, adminview.Deleting:
		line += " · " + s.State.String() + "..."
	}
	fmt.Fprintln(w, line)
}

// Table writes the current page. Row numbers start at 1; the selected row
// is marked with ">".
func Table(w io.Writer, s adminview.Snapshot) {
	if len(s.Items) == 0 {
		fmt.Fprintln(w, "(no records)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if s.Role == models.RoleEmployer {
		fmt.Fprintln(tw, "\t#\tID\tCOMPANY\tMANAGER\tPHONE\tCREATED")
	} else {
		fmt.Fprintln(tw, "\t#\tID\tNAME\tCOUNTRY\tCHANNEL\tCREATED")
	}
	for i, rec := range s.Items {
		mark := " "
		if rec.ID().Hex() == s.SelectedID {
			mark = ">"
		}
		cols := rowColumns(rec)
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", mark, i+1, rec.ID().Hex(), strings.Join(cols, "\t"))
	}
	_ = tw.Flush()
}

func rowColumns(rec models.Record) []string {
	cut := func(v string) string { return Truncate(Or(v), cellWidth) }
	switch {
	case rec.Employer != nil:
		b := rec.Employer.BasicInfo
		if b == nil {
			b = &models.EmployerBasicInfo{}
		}
		return []string{cut(b.CompanyName), cut(b.ManagerName), Phone(b.PhoneParts()), Date(rec.CreatedAt())}
	case rec.Seeker != nil:
		var name, country, channel string
		if b := rec.Seeker.BasicInfo; b != nil {
			name = b.Name
		}
		if c := rec.Seeker.Consultation; c != nil {
			channel = c.Channel
			if c.Country != nil {
				country = c.Country.Label
			}
		}
		return []string{cut(name), cut(country), cut(channel), Date(rec.CreatedAt())}
	}
	return []string{Missing, Missing, Missing, Missing}
}

// Screen writes header, pagination, table and, when loaded, the detail.
func Screen(w io.Writer, s adminview.Snapshot) {
	Header(w, s)
	Pagination(w, s)
	fmt.Fprintln(w)
	Table(w, s)
	if !s.Detail.IsZero() {
		fmt.Fprintln(w)
		Detail(w, s.Detail)
	} else if s.SelectedID != "" && s.State == adminview.DetailLoading {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "loading detail...")
	}
}

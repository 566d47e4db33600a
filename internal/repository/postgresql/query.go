package postgresql

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

// where collects AND-ed conditions and their positional arguments. Each
// condition holds a single "?" that becomes the next $n placeholder.
type where struct {
	conditions []string
	args       []any
}

func (w *where) add(condition string, arg any) {
	w.args = append(w.args, arg)
	w.conditions = append(w.conditions, strings.Replace(condition, "?", "$"+itoa(len(w.args)), 1))
}

// eq adds "column = value" when p constrains the query.
func (w *where) eq(column string, p *string) {
	if v, ok := queryfilter.Active(p); ok {
		w.add(column+" = ?", v)
	}
}

// eqFold is eq ignoring case.
func (w *where) eqFold(column string, p *string) {
	if v, ok := queryfilter.Active(p); ok {
		w.add("UPPER("+column+") = UPPER(?)", v)
	}
}

// contains matches any of columns holding the trimmed needle, ignoring case.
func (w *where) contains(p *string, columns ...string) {
	v, ok := queryfilter.Active(p)
	if !ok {
		return
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + ` ILIKE '%' || $` + itoa(len(w.args)+1) + ` || '%'`
	}
	w.args = append(w.args, likeEscaper.Replace(strings.TrimSpace(v)))
	w.conditions = append(w.conditions, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "\n\t\tWHERE " + strings.Join(w.conditions, " AND ")
}

func itoa(n int) string { return strconv.Itoa(n) }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// dateText renders a date column the way ISODate expects it.
func dateText(column string) string {
	return "to_char(" + column + ", 'YYYY-MM-DD')"
}

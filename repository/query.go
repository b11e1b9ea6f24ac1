package repository

import (
	"fmt"
	"strings"
)

// whereBuilder collects AND-ed conditions with positional Postgres args.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (b *whereBuilder) add(cond string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(cond, fmt.Sprintf("$%d", len(b.args))))
}

func (b *whereBuilder) sql() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// page appends OFFSET/LIMIT. A zero limit means no limit.
func (b *whereBuilder) page(skip, limit int) string {
	var sb strings.Builder
	if limit > 0 {
		b.args = append(b.args, limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(b.args))
	}
	if skip > 0 {
		b.args = append(b.args, skip)
		fmt.Fprintf(&sb, " OFFSET $%d", len(b.args))
	}
	return sb.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон ILIKE "%...%", пользовательские % и _ ищутся буквально
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

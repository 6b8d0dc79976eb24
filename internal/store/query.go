package store

import (
	"fmt"
	"strings"
)

// channelColumns is the SELECT list shared by the channel queries; Scan targets follow this order.
const channelColumns = `id::text, name, category, language, country, stream_url, logo_url, description, created_at`

// buildChannelWhere builds the WHERE clause for filter, numbering placeholders
// from startArg. It returns an empty clause when no filter is active.
func buildChannelWhere(f ChannelFilter, startArg int) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, startArg+len(args)-1))
	}

	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Language != "" {
		add("language = $%d", f.Language)
	}
	if f.Country != "" {
		add("country = $%d", f.Country)
	}
	if f.Search != "" {
		add(`name ILIKE $%d ESCAPE '\'`, "%"+escapeLike(f.Search)+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

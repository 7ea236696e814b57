package repository

import (
	"strings"

	"github.com/tnqbao/gau-sequia-service/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderBy turns "field" / "-field" tokens into ORDER BY columns. Tokens not
// present in allowed are ignored; when none survive, fallback is used. The
// primary key is appended as a tiebreaker so pages stay stable.
func orderBy(db *gorm.DB, table string, requested []string, allowed map[string]string, fallback []string) *gorm.DB {
	columns := orderColumns(table, requested, allowed)
	if len(columns) == 0 {
		columns = orderColumns(table, fallback, allowed)
	}

	hasID := false
	for _, col := range columns {
		if col.Column.Name == "id" {
			hasID = true
		}
	}
	if !hasID {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}})
	}

	for _, col := range columns {
		db = db.Order(col)
	}
	return db
}

func orderColumns(table string, tokens []string, allowed map[string]string) []clause.OrderByColumn {
	var columns []clause.OrderByColumn
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		desc := strings.HasPrefix(token, "-")
		name, ok := allowed[strings.TrimPrefix(token, "-")]
		if !ok {
			continue
		}
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{Table: table, Name: name},
			Desc:   desc,
		})
	}
	return columns
}

func paginate(db *gorm.DB, page domain.Page) *gorm.DB {
	if page.Size <= 0 {
		return db
	}
	return db.Offset(page.Offset()).Limit(page.Size)
}

// containsPattern builds a case-insensitive LIKE operand.
func containsPattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

package view

import (
	"embed"
	"html/template"
	"strconv"

	"github.com/tnqbao/gau-sequia-service/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"date":     formatDate,
	"optFloat": formatOptionalFloat,
	"pct":      formatPct,
	"optInt":   formatOptionalInt,
	"selected": func(current string, id uint) bool { return current == strconv.FormatUint(uint64(id), 10) },
}

// Templates parses every page and partial; page templates are addressed by
// file name, e.g. "panel.html".
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func formatDate(value interface{}) string {
	switch d := value.(type) {
	case domain.Date:
		return d.Format("02/01/2006")
	case *domain.Date:
		if d == nil {
			return "—"
		}
		return d.Format("02/01/2006")
	default:
		return ""
	}
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return "—"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatPct(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return "—"
	}
	return strconv.Itoa(*n)
}

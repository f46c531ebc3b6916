// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page together with the shared layout partials.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Load installs the parsed templates on the gin engine.
func Load(router *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)
	return nil
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"date":  formatDate,
		"money": formatMoney,
		"stars": formatRating,
	}
}

// formatDate accepts time.Time or *time.Time; nil and zero render as "-".
func formatDate(value interface{}) string {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return "-"
		}
		t = *v
	default:
		return "-"
	}
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006 15:04")
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func formatRating(value interface{}) string {
	switch v := value.(type) {
	case float64:
		return fmt.Sprintf("%.1f", v)
	case *float64:
		if v != nil {
			return fmt.Sprintf("%.1f", *v)
		}
	}
	return "-"
}

package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type Templates struct {
	set        *template.Template
	restaurant string
}

func NewTemplates(restaurant string) (*Templates, error) {
	set, err := template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{set: set, restaurant: restaurant}, nil
}

// Render executes templates/<name>.html with data.
func (t *Templates) Render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	err := t.set.ExecuteTemplate(&buf, name+".html", struct {
		Restaurant string
		Data       interface{}
	}{t.restaurant, data})
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

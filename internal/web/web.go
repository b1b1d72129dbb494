// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// DeadlineInputLayout is the layout of an HTML datetime-local input.
const DeadlineInputLayout = "2006-01-02T15:04"

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"inputDate": func(t time.Time) string {
			return t.Format(DeadlineInputLayout)
		},
		"add":     func(a, b int) int { return a + b },
		"pageURL": PageURL,
	}
}

// PageURL returns a relative link to another page of a list, keeping the
// other query parameters such as a status filter.
func PageURL(query url.Values, page, limit int) string {
	v := url.Values{}
	for k, vs := range query {
		v[k] = append([]string(nil), vs...)
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	return "?" + v.Encode()
}

// Templates parses the embedded templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// LoadTemplates installs the embedded templates on r.
func LoadTemplates(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	return nil
}

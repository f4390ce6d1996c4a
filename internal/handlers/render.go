package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"time"

	"purchase-manager/internal/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	flashInfo  = "notice"
	flashAlert = "alert"
)

// FuncMap — функции, доступные в шаблонах.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"pathEscape": url.PathEscape,
		"price":      func(d decimal.Decimal) string { return d.StringFixed(2) },
		"datetime":   formatDateTime,
		"yesno": func(v bool) string {
			if v {
				return "да"
			}
			return "нет"
		},
	}
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Local().Format("02.01.2006 15:04")
}

// render — обёртка над c.HTML, которая во все шаблоны прокидывает
// отложенные сообщения из сессии и сообщение текущего экрана.
func render(c *gin.Context, status int, tmpl string, data gin.H, notice *views.Notice) {
	if data == nil {
		data = gin.H{}
	}

	notices := popFlashes(c)
	if notice != nil {
		notices = append(notices, *notice)
	}
	data["Notices"] = notices

	c.HTML(status, tmpl, data)
}

// redirect сохраняет сообщение эффекта до следующей страницы и уводит по адресу.
func redirect(c *gin.Context, eff views.Effect) {
	if eff.Notice != nil {
		key := flashInfo
		if eff.Notice.Error {
			key = flashAlert
		}
		sess := sessions.Default(c)
		sess.AddFlash(eff.Notice.Text, key)
		_ = sess.Save()
	}
	c.Redirect(http.StatusFound, eff.Redirect)
}

func popFlashes(c *gin.Context) []views.Notice {
	sess := sessions.Default(c)

	var out []views.Notice
	for _, key := range []string{flashInfo, flashAlert} {
		for _, v := range sess.Flashes(key) {
			if s, ok := v.(string); ok {
				out = append(out, views.Notice{Text: s, Error: key == flashAlert})
			}
		}
	}
	if len(out) > 0 {
		_ = sess.Save()
	}
	return out
}

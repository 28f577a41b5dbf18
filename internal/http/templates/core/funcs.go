// Package core provides the template helpers shared by every dashboard page.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/shopdash/shopdash-ui/internal/http/uiutil"
	"github.com/shopdash/shopdash-ui/internal/util"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":     deps.ContentTemplateFor,
		"friendlyTime":    createFriendlyTimeFunc(),
		"relativeTime":    createRelativeTimeFunc(),
		"timeTag":         createTimeTagFunc(),
		"add":             func(a, b int) int { return a + b },
		"sub":             func(a, b int) int { return a - b },
		"contains":        strings.Contains,
		"formatNumber":    formatNumberTemplate,
		"formatMoney":     util.FormatMoney,
		"formatPercent":   util.FormatPercent,
		"formatDecimal":   func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"formatDuration":  util.FormatDuration,
		"syncStatusClass": syncStatusClass,
		"truncateText":    TruncateText,
		"deref":           derefFloat,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		// #nosec G203 - json.Marshal escapes <, > and & so the output is safe inside <script>.
		return template.JS(b), nil
	}
}

func asTime(ts any) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func createFriendlyTimeFunc() func(any) string {
	return func(ts any) string {
		t0 := asTime(ts)
		if t0.IsZero() {
			return ""
		}
		return uiutil.FormatFriendlyDateTime(t0)
	}
}

func createRelativeTimeFunc() func(any) string {
	return func(ts any) string {
		t0 := asTime(ts)
		if t0.IsZero() {
			return "Never"
		}
		return uiutil.FriendlyRelativeTime(t0)
	}
}

func createTimeTagFunc() func(any) template.HTML {
	return func(ts any) template.HTML {
		t0 := asTime(ts)
		if t0.IsZero() {
			return ""
		}
		friendly := t0.Local().Format("Jan 2, 2006 3:04:05 PM")
		dt := t0.UTC().Format(time.RFC3339)
		title := t0.Local().Format(time.RFC1123)
		// #nosec G203 - The HTML here is constructed from trusted, escaped values only
		return template.HTML(
			fmt.Sprintf(
				"<time datetime=\"%s\" title=\"%s\">%s</time>",
				dt,
				template.HTMLEscapeString(title),
				template.HTMLEscapeString(friendly),
			),
		)
	}
}

// formatNumberTemplate formats integers with comma separators for thousands.
func formatNumberTemplate(v any) string {
	switch x := v.(type) {
	case int:
		return util.GroupThousands(int64(x))
	case int64:
		return util.GroupThousands(x)
	case int32:
		return util.GroupThousands(int64(x))
	default:
		return fmt.Sprint(v)
	}
}

func syncStatusClass(status any) string {
	switch strings.ToUpper(fmt.Sprint(status)) {
	case "COMPLETED":
		return "badge-success"
	case "RUNNING":
		return "badge-info"
	case "PENDING":
		return "badge-secondary"
	case "FAILED":
		return "badge-danger"
	default:
		return "badge-light"
	}
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// TruncateText truncates a string to a maximum number of runes (not bytes).
// Adds an ellipsis (…) when truncated for visual clarity.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, maxLen)
}

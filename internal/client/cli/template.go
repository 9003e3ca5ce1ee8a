package cli

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/iudanet/fieldkeeper/internal/models"
)

const reportTemplate = `{{.Index}}. {{.Report.Title}}{{if .Pending}}  [pending]{{end}}
   ID:       {{.Report.ID}}
   Site:     {{.Report.Site}}
   Captured: {{time .Report.CapturedAt}}
{{- if .Report.Author }}
   Author:   {{.Report.Author}}
{{- end}}
{{- if .Report.Notes }}
   Notes:    {{.Report.Notes}}
{{- end}}
{{- if .Report.Signature }}
   Signed:   yes
{{- end}}
`

const staffTemplate = `{{.Index}}. {{.Staff.FullName}}{{if .Pending}}  [pending]{{end}}
   ID:      {{.Staff.ID}}
{{- if .Staff.Role }}
   Role:    {{.Staff.Role}}
{{- end}}
{{- if .Staff.Phone }}
   Phone:   {{.Staff.Phone}}
{{- end}}
   Updated: {{time .Staff.UpdatedAt}}
`

const actionTemplate = `{{.Action.ID}}  {{.Action.Kind}}
   Status:  {{.Action.Status}}
   Retries: {{.Action.RetryCount}}/{{.Action.RetryBudget}}
   Queued:  {{time .Action.CreatedAt}}
   Target:  {{target .Action}}
`

var templates = template.Must(template.New("cli").Funcs(template.FuncMap{
	"time":   formatTime,
	"target": actionTarget,
}).Parse(`{{define "report"}}` + reportTemplate + `{{end}}` +
	`{{define "staff"}}` + staffTemplate + `{{end}}` +
	`{{define "action"}}` + actionTemplate + `{{end}}`))

// render выполняет именованный шаблон
func (c *Cli) render(name string, data any) error {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	c.io.Println(sb.String())
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// actionTarget описывает объект, к которому относится действие
func actionTarget(a models.Action) string {
	switch p := a.Payload.(type) {
	case models.SubmitReportPayload:
		return fmt.Sprintf("report %s (%s)", p.Report.ID, p.Report.Title)
	case models.DeleteReportPayload:
		return "report " + p.ReportID
	case models.AddStaffRecordPayload:
		return fmt.Sprintf("staff %s (%s)", p.Staff.ID, p.Staff.FullName)
	case models.UpdateStaffRecordPayload:
		return fmt.Sprintf("staff %s (%s)", p.Staff.ID, p.Staff.FullName)
	case models.FullResyncPayload:
		if p.Reason != "" {
			return "all data: " + p.Reason
		}
		return "all data"
	default:
		return "-"
	}
}

// formatSize печатает размер в байтах в человекочитаемом виде
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

package mail

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/coad-fablab/printlab-api/internal/models"
)

var submissionReceivedTmpl = template.Must(template.New("submission_received").Parse(
	`Hi {{.Name}},

We received your 3D print submission "{{.DisplayName}}" (job {{.ShortID}}).

Staff will review it shortly. You will get another email once it has
been approved or if changes are needed.

Method: {{.Material}}
Printer: {{.Printer}}
Color: {{.Color}}

COAD FabLab
`))

var approvalTmpl = template.Must(template.New("approval").Parse(
	`Hi {{.Name}},

Your print job "{{.DisplayName}}" (job {{.ShortID}}) has been approved.

Estimated weight: {{.WeightG}} g
Estimated print time: {{.TimeHours}} h
Cost: ${{.CostUSD}}

Please confirm that you accept the cost before we print:

{{.ConfirmURL}}

This link expires in 72 hours. If it expires, contact the FabLab to
have a new one issued.

COAD FabLab
`))

var rejectionTmpl = template.Must(template.New("rejection").Parse(
	`Hi {{.Name}},

Unfortunately your print job "{{.DisplayName}}" (job {{.ShortID}}) was
not accepted for printing.

Reason(s):
{{range .Reasons}}  - {{.}}
{{end}}
You are welcome to fix the issues and submit again.

COAD FabLab
`))

var completedTmpl = template.Must(template.New("completed").Parse(
	`Hi {{.Name}},

Your print job "{{.DisplayName}}" (job {{.ShortID}}) has finished
printing and is ready for pickup at the FabLab front desk.

Amount due: ${{.CostUSD}}

COAD FabLab
`))

// SubmissionReceived acknowledges a new upload.
func SubmissionReceived(job *models.Job) Message {
	body := render(submissionReceivedTmpl, map[string]any{
		"Name":        job.StudentName,
		"DisplayName": job.DisplayName,
		"ShortID":     job.ShortID,
		"Material":    job.Material,
		"Printer":     job.Printer,
		"Color":       job.Color,
	})
	return Message{
		To:      job.Email,
		Subject: fmt.Sprintf("Print submission received (job %s)", job.ShortID),
		Body:    body,
	}
}

// Approval asks the student to confirm the quoted cost via the link.
func Approval(job *models.Job, confirmURL string) Message {
	body := render(approvalTmpl, map[string]any{
		"Name":        job.StudentName,
		"DisplayName": job.DisplayName,
		"ShortID":     job.ShortID,
		"WeightG":     floatOrDash(job.WeightG),
		"TimeHours":   floatOrDash(job.TimeHours),
		"CostUSD":     moneyOrDash(job.CostUSD),
		"ConfirmURL":  confirmURL,
	})
	return Message{
		To:      job.Email,
		Subject: fmt.Sprintf("Action needed: confirm your print job %s", job.ShortID),
		Body:    body,
	}
}

// Rejection notifies the student with the staff-selected reasons.
func Rejection(job *models.Job) Message {
	reasons := []string(job.RejectReasons)
	if len(reasons) == 0 {
		reasons = []string{"See staff for details"}
	}
	body := render(rejectionTmpl, map[string]any{
		"Name":        job.StudentName,
		"DisplayName": job.DisplayName,
		"ShortID":     job.ShortID,
		"Reasons":     reasons,
	})
	return Message{
		To:      job.Email,
		Subject: fmt.Sprintf("Print job %s was not accepted", job.ShortID),
		Body:    body,
	}
}

// Completed tells the student the print is ready for pickup.
func Completed(job *models.Job) Message {
	body := render(completedTmpl, map[string]any{
		"Name":        job.StudentName,
		"DisplayName": job.DisplayName,
		"ShortID":     job.ShortID,
		"CostUSD":     moneyOrDash(job.CostUSD),
	})
	return Message{
		To:      job.Email,
		Subject: fmt.Sprintf("Print job %s is ready for pickup", job.ShortID),
		Body:    body,
	}
}

func render(tmpl *template.Template, data any) string {
	var b strings.Builder
	// templates are static and the data is plain values, so this
	// cannot fail at runtime
	_ = tmpl.Execute(&b, data)
	return b.String()
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *v), "0"), ".")
}

func moneyOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

type PageKind string

const (
	KindSuccess PageKind = "success"
	KindError   PageKind = "error"
	KindWarning PageKind = "warning"
	KindInfo    PageKind = "info"
)

type pageColors struct {
	Background string
	Border     string
	Icon       string
}

var kindColors = map[PageKind]pageColors{
	KindSuccess: {Background: "#dcfce7", Border: "#22c55e", Icon: "✓"},
	KindError:   {Background: "#fee2e2", Border: "#ef4444", Icon: "✗"},
	KindWarning: {Background: "#fef3c7", Border: "#f59e0b", Icon: "⚠"},
	KindInfo:    {Background: "#dbeafe", Border: "#3b82f6", Icon: "ℹ"},
}

type OperatorEmailData struct {
	Name       string
	Business   string
	Email      string
	Date       string
	Time       string
	Duration   int
	Reason     string
	Notes      string
	ApproveURL string
}

type ConfirmationEmailData struct {
	Name     string
	Date     string
	Time     string
	Duration int
}

// Renderer isolates HTML presentation from the booking lifecycle. The
// lifecycle only ever sees opaque rendered bodies.
type Renderer interface {
	OperatorEmail(data OperatorEmailData) (string, error)
	ConfirmationEmail(data ConfirmationEmailData) (string, error)
	StatusPage(kind PageKind, title string, message template.HTML) ([]byte, error)
}

type HTMLRenderer struct {
	orgName      string
	contactEmail string

	operatorTmpl     *template.Template
	confirmationTmpl *template.Template
	statusTmpl       *template.Template
}

func NewHTMLRenderer(orgName, contactEmail string) *HTMLRenderer {
	return &HTMLRenderer{
		orgName:          orgName,
		contactEmail:     contactEmail,
		operatorTmpl:     template.Must(template.New("operator").Parse(operatorEmailTemplate)),
		confirmationTmpl: template.Must(template.New("confirmation").Parse(confirmationEmailTemplate)),
		statusTmpl:       template.Must(template.New("status").Parse(statusPageTemplate)),
	}
}

func (r *HTMLRenderer) OperatorEmail(data OperatorEmailData) (string, error) {
	if data.Business == "" {
		data.Business = "Not provided"
	}

	var buf bytes.Buffer
	err := r.operatorTmpl.Execute(&buf, struct {
		OperatorEmailData
		OrgName string
	}{data, r.orgName})
	if err != nil {
		return "", fmt.Errorf("failed to render operator email: %w", err)
	}
	return buf.String(), nil
}

func (r *HTMLRenderer) ConfirmationEmail(data ConfirmationEmailData) (string, error) {
	var buf bytes.Buffer
	err := r.confirmationTmpl.Execute(&buf, struct {
		ConfirmationEmailData
		OrgName      string
		ContactEmail string
	}{data, r.orgName, r.contactEmail})
	if err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return buf.String(), nil
}

func (r *HTMLRenderer) StatusPage(kind PageKind, title string, message template.HTML) ([]byte, error) {
	colors, ok := kindColors[kind]
	if !ok {
		colors = kindColors[KindInfo]
	}

	var buf bytes.Buffer
	err := r.statusTmpl.Execute(&buf, struct {
		Title      string
		Message    template.HTML
		OrgName    string
		Background template.CSS
		Border     template.CSS
		Icon       string
	}{title, message, r.orgName, template.CSS(colors.Background), template.CSS(colors.Border), colors.Icon})
	if err != nil {
		return nil, fmt.Errorf("failed to render status page: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatSchedule renders the stored date and 24h clock time in the long
// human-readable form used by emails and status pages:
// "Monday, January 5, 2025" and "2:30 PM".
func FormatSchedule(date, clock string) (string, string, error) {
	parsed, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse booking schedule: %w", err)
	}
	return parsed.Format("Monday, January 2, 2006"), parsed.Format("3:04 PM"), nil
}

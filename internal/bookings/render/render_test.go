package render

import (
	"html/template"
	"strings"
	"testing"
)

func TestFormatSchedule(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		clock    string
		wantDate string
		wantTime string
	}{
		{
			name:     "afternoon",
			date:     "2026-09-15",
			clock:    "14:05",
			wantDate: "Tuesday, September 15, 2026",
			wantTime: "2:05 PM",
		},
		{
			name:     "just after midnight",
			date:     "2026-01-01",
			clock:    "00:30",
			wantDate: "Thursday, January 1, 2026",
			wantTime: "12:30 AM",
		},
		{
			name:     "noon",
			date:     "2026-06-08",
			clock:    "12:00",
			wantDate: "Monday, June 8, 2026",
			wantTime: "12:00 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotTime, err := FormatSchedule(tt.date, tt.clock)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotDate != tt.wantDate {
				t.Errorf("expected date %q, got %q", tt.wantDate, gotDate)
			}
			if gotTime != tt.wantTime {
				t.Errorf("expected time %q, got %q", tt.wantTime, gotTime)
			}
		})
	}
}

func TestFormatSchedule_InvalidInput(t *testing.T) {
	if _, _, err := FormatSchedule("2026-13-01", "10:00"); err == nil {
		t.Error("expected error for invalid month")
	}
	if _, _, err := FormatSchedule("2026-09-15", "25:00"); err == nil {
		t.Error("expected error for invalid clock")
	}
}

func TestOperatorEmail(t *testing.T) {
	r := NewHTMLRenderer("Acme Consulting", "contact@acme.test")

	html, err := r.OperatorEmail(OperatorEmailData{
		Name:       "Ada Lovelace",
		Business:   "Analytical Engines Ltd",
		Email:      "ada@example.com",
		Date:       "Tuesday, September 15, 2026",
		Time:       "2:05 PM",
		Duration:   30,
		Reason:     "Quarterly strategy review",
		Notes:      "Prefers video call",
		ApproveURL: "https://booking.acme.test/approve/abc-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Ada Lovelace",
		"Analytical Engines Ltd",
		"ada@example.com",
		"Tuesday, September 15, 2026",
		"2:05 PM",
		"30 minutes",
		"Quarterly strategy review",
		"Prefers video call",
		"https://booking.acme.test/approve/abc-123",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("operator email missing %q", want)
		}
	}
}

func TestOperatorEmail_DefaultsAndOmissions(t *testing.T) {
	r := NewHTMLRenderer("Acme Consulting", "contact@acme.test")

	html, err := r.OperatorEmail(OperatorEmailData{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Date:       "Tuesday, September 15, 2026",
		Time:       "2:05 PM",
		Duration:   30,
		Reason:     "Quarterly strategy review",
		ApproveURL: "https://booking.acme.test/approve/abc-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, "Not provided") {
		t.Error("expected empty business to render as 'Not provided'")
	}
	if strings.Contains(html, "Notes") {
		t.Error("expected notes block to be omitted when notes are empty")
	}
}

func TestOperatorEmail_EscapesUserContent(t *testing.T) {
	r := NewHTMLRenderer("Acme Consulting", "contact@acme.test")

	html, err := r.OperatorEmail(OperatorEmailData{
		Name:       "<script>alert(1)</script>",
		Email:      "ada@example.com",
		Date:       "Tuesday, September 15, 2026",
		Time:       "2:05 PM",
		Duration:   30,
		Reason:     "review",
		ApproveURL: "https://booking.acme.test/approve/abc-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Error("expected user content to be HTML-escaped")
	}
}

func TestConfirmationEmail(t *testing.T) {
	r := NewHTMLRenderer("Acme Consulting", "contact@acme.test")

	html, err := r.ConfirmationEmail(ConfirmationEmailData{
		Name:     "Ada Lovelace",
		Date:     "Tuesday, September 15, 2026",
		Time:     "2:05 PM",
		Duration: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Ada Lovelace",
		"Tuesday, September 15, 2026",
		"2:05 PM",
		"30 minutes",
		"Acme Consulting",
		"contact@acme.test",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("confirmation email missing %q", want)
		}
	}
}

func TestStatusPage(t *testing.T) {
	tests := []struct {
		kind       PageKind
		background string
		icon       string
	}{
		{KindSuccess, "#dcfce7", "✓"},
		{KindError, "#fee2e2", "✗"},
		{KindWarning, "#fef3c7", "⚠"},
		{KindInfo, "#dbeafe", "ℹ"},
	}

	r := NewHTMLRenderer("Acme Consulting", "contact@acme.test")

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			body, err := r.StatusPage(tt.kind, "Some Title", template.HTML("Line one.<br>Line two."))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			page := string(body)
			for _, want := range []string{"Some Title", "Line one.<br>Line two.", tt.background, tt.icon} {
				if !strings.Contains(page, want) {
					t.Errorf("%s page missing %q", tt.kind, want)
				}
			}
		})
	}
}

func TestStatusPage_UnknownKindFallsBackToInfo(t *testing.T) {
	r := NewHTMLRenderer("Acme Consulting", "contact@acme.test")

	body, err := r.StatusPage(PageKind("bogus"), "Title", template.HTML("msg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(body), "#dbeafe") {
		t.Error("expected unknown kinds to use the info palette")
	}
}

package nlp

import (
	"strings"
	"testing"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
)

func TestRenderTicketList(t *testing.T) {
	r := NewResponder()
	prefs := NewPreferencesBuilder().Build()

	result := &QueryResult{
		Type:    ResultTicketList,
		Success: true,
		Data: []tickets.Ticket{
			{ID: "1", Status: tickets.StatusOpen, Description: "payroll access"},
			{ID: "2", Status: tickets.StatusClosed, Description: "server room fire"},
		},
		Count: 2,
	}
	got := r.Render(result, IntentShowActiveTickets, "show active tickets", prefs)
	if !strings.Contains(got, "[1] open - payroll access") {
		t.Errorf("missing first line in %q", got)
	}
	if !strings.Contains(got, "[2] closed - server room fire") {
		t.Errorf("missing second line in %q", got)
	}
}

func TestRenderEmptyTicketList(t *testing.T) {
	r := NewResponder()
	result := &QueryResult{Type: ResultTicketList, Success: true, Data: []tickets.Ticket{}}
	got := r.Render(result, IntentShowActiveTickets, "show active tickets", NewPreferencesBuilder().Build())
	if !strings.Contains(strings.ToLower(got), "no tickets found") {
		t.Errorf("Render = %q, want a no-tickets message", got)
	}
}

func TestRenderErrorMessages(t *testing.T) {
	r := NewResponder()
	prefs := NewPreferencesBuilder().Build()

	for _, et := range []ErrorType{
		ErrQueryNotUnderstood, ErrInsufficientPermissions, ErrInvalidParameters,
		ErrDataNotFound, ErrOperationFailed, ErrSystemError,
	} {
		got := r.Render(errorResult(et, ""), IntentUnknown, "x", prefs)
		if got != errorMessages[et] {
			t.Errorf("Render(%s) = %q, want %q", et, got, errorMessages[et])
		}
	}
}

func TestTruncationHonorsMaxLength(t *testing.T) {
	r := NewResponder()
	long := strings.Repeat("emergency access ", 100)
	result := &QueryResult{Type: ResultInformation, Success: true, Message: long}

	for _, maxLen := range []int{10, 80, 120, 400} {
		prefs := NewPreferencesBuilder().Style(StyleTechnical).MaxResponseLength(maxLen).Build()
		got := r.Render(result, IntentHelp, "help", prefs)

		limit := maxLen
		if limit < 80 {
			limit = 80
		}
		if n := len([]rune(got)); n > limit {
			t.Errorf("maxLen %d: rendered %d chars, cap is %d", maxLen, n, limit)
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("maxLen %d: truncated response missing ellipsis: %q", maxLen, got)
		}
	}
}

func TestShortResponsesAreNotTruncated(t *testing.T) {
	r := NewResponder()
	result := &QueryResult{Type: ResultInformation, Success: true, Message: "All done."}
	got := r.Render(result, IntentHelp, "help", NewPreferencesBuilder().MaxResponseLength(90).Build())
	if got != "All done." {
		t.Errorf("Render = %q, want untouched message", got)
	}
}

func TestConciseStyleTrimsLines(t *testing.T) {
	r := NewResponder()
	ts := make([]tickets.Ticket, 20)
	for i := range ts {
		ts[i] = tickets.Ticket{ID: "1", Status: tickets.StatusOpen, Description: "x"}
	}
	result := &QueryResult{Type: ResultTicketList, Success: true, Data: ts, Count: len(ts)}

	prefs := NewPreferencesBuilder().Style(StyleConcise).MaxResponseLength(1000).Build()
	got := r.Render(result, IntentShowActiveTickets, "show active tickets", prefs)

	if lines := strings.Count(got, "\n") + 1; lines > 8 {
		t.Errorf("concise output has %d lines, cap is 8", lines)
	}
	if len([]rune(got)) > 300 {
		t.Errorf("concise output has %d chars, cap is 300", len([]rune(got)))
	}
}

func TestEmojiPrefix(t *testing.T) {
	r := NewResponder()
	result := &QueryResult{Type: ResultInformation, Success: true, Message: "Ticket 7 closed."}

	withEmoji := NewPreferencesBuilder().Emoji(true).Build()
	got := r.Render(result, IntentCloseTicket, "close ticket #7", withEmoji)
	if !strings.HasPrefix(got, intentEmojis[IntentCloseTicket]) {
		t.Errorf("Render = %q, want emoji prefix", got)
	}

	// A second pass over already-decorated text must not stack emojis.
	again := r.Render(&QueryResult{Type: ResultInformation, Success: true, Message: got}, IntentCloseTicket, "close ticket #7", withEmoji)
	if strings.Count(again, intentEmojis[IntentCloseTicket]) != 1 {
		t.Errorf("emoji stacked: %q", again)
	}
}

func TestVerboseAppendsQuery(t *testing.T) {
	r := NewResponder()
	result := &QueryResult{
		Type:     ResultTicketList,
		Success:  true,
		Data:     []tickets.Ticket{},
		Metadata: map[string]any{"filters": map[string]string{"status": "open"}},
	}
	prefs := NewPreferencesBuilder().Verbose(true).MaxResponseLength(1000).Build()
	got := r.Render(result, IntentSearchTickets, "find open tickets", prefs)

	if !strings.Contains(got, "Query: find open tickets") {
		t.Errorf("verbose output missing query echo: %q", got)
	}
	if !strings.Contains(got, "status=open") {
		t.Errorf("verbose output missing filters: %q", got)
	}
}

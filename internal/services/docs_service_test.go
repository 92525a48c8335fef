package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"busreservation/internal/domain"
	"busreservation/internal/domain/models"
)

func TestDocsServiceGenerateETicket(t *testing.T) {
	l, _ := newTestLedger(t, []models.Bus{routeR1()}, nil)
	b, err := l.BookSeat(context.Background(), "R1", passenger("Asha Rao"))
	if err != nil {
		t.Fatalf("BookSeat returned error: %v", err)
	}

	svc := DocsService{Ledger: l}
	pdf, filename, err := svc.GenerateETicket(b.ID)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("GenerateETicket did not return a PDF")
	}
	if filename != "ETICKET_"+b.ID+"_Asha_Rao.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceTicketText(t *testing.T) {
	l, _ := newTestLedger(t, []models.Bus{routeR1()}, nil)
	b, err := l.BookSeat(context.Background(), "R1", passenger("Asha"))
	if err != nil {
		t.Fatalf("BookSeat returned error: %v", err)
	}

	text, err := DocsService{Ledger: l}.TicketText(b.ID)
	if err != nil {
		t.Fatalf("TicketText returned error: %v", err)
	}
	for _, want := range []string{"BUS TICKET", b.ID, "Delhi -> Mumbai", "Seat Number   : 1", "₹100.00", "CONFIRMED"} {
		if !strings.Contains(text, want) {
			t.Fatalf("ticket missing %q:\n%s", want, text)
		}
	}
}

func TestDocsServiceUnknownBooking(t *testing.T) {
	l, _ := newTestLedger(t, []models.Bus{routeR1()}, nil)
	if _, _, err := (DocsService{Ledger: l}).GenerateETicket("BK0"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSafeFilenamePartKeepsRunesWhole(t *testing.T) {
	name := strings.Repeat("अ", 39) + "आइ"
	got := safeFilenamePart(name)
	if !utf8.ValidString(got) {
		t.Fatalf("safeFilenamePart produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 40 {
		t.Fatalf("rune count = %d, want 40", n)
	}
	if got := safeFilenamePart("  "); got != "NA" {
		t.Fatalf("blank name = %q, want NA", got)
	}
	if got := safeFilenamePart("a/b c"); got != "a_b_c" {
		t.Fatalf("unsafe chars = %q, want a_b_c", got)
	}
}

package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
)

func TestBuildMessageHeaders(t *testing.T) {
	config.MailFrom = "noreply@example.com"
	config.MailFromName = "Maintenance System"

	msg := BuildMessage(models.EmailOutbox{
		ToAddr:   "eng@example.com",
		ReplyTo:  "customer@example.com",
		Subject:  "Assignment",
		HTMLBody: "<p>hello</p>",
		TextBody: "hello",
	})

	if got := msg.GetHeader("To"); len(got) != 1 || got[0] != "eng@example.com" {
		t.Fatalf("unexpected To header: %v", got)
	}
	if got := msg.GetHeader("Reply-To"); len(got) != 1 || got[0] != "customer@example.com" {
		t.Fatalf("unexpected Reply-To header: %v", got)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("render message: %v", err)
	}
	raw := buf.String()
	if !strings.Contains(raw, "text/html") || !strings.Contains(raw, "text/plain") {
		t.Fatalf("expected both html and plain parts:\n%s", raw)
	}
}

func TestBuildMessagePlainOnly(t *testing.T) {
	config.MailFrom = "noreply@example.com"

	msg := BuildMessage(models.EmailOutbox{
		ToAddr:   "eng@example.com",
		Subject:  "Plain",
		TextBody: "hello",
	})

	if got := msg.GetHeader("Reply-To"); len(got) != 0 {
		t.Fatalf("expected no Reply-To header, got %v", got)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("render message: %v", err)
	}
	if strings.Contains(buf.String(), "text/html") {
		t.Fatal("expected no html part")
	}
}

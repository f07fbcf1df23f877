package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"parttrack/config"
)

func TestNewPicksNopWithoutSMTP(t *testing.T) {
	if _, ok := New(config.MailConfig{To: []string{"shop@example.com"}}).(Nop); !ok {
		t.Errorf("expected Nop without SMTP host")
	}
	if _, ok := New(config.MailConfig{Host: "smtp.example.com", Port: 465, To: []string{"shop@example.com"}}).(*MailNotifier); !ok {
		t.Errorf("expected MailNotifier with SMTP host")
	}
	if err := (Nop{}).OverShipped(context.Background(), OverShipment{}); err != nil {
		t.Errorf("Nop returned %v", err)
	}
}

func TestOverShipmentMessage(t *testing.T) {
	m := NewMailNotifier(config.MailConfig{Host: "smtp.example.com", Port: 465, From: "parttrack@example.com", To: []string{"pm@example.com"}})
	msg := m.message(OverShipment{
		JobNumber:   "J1",
		ContainerID: "1790521411234567890",
		ShippedBy:   "Sam <Lead>",
		Lines:       []OverShipLine{{Description: `Conduit 3/4"`, Requested: 9999, Applied: 100}},
	})

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.String()
	for _, want := range []string{"Subject: Over-shipment on job J1", "To: pm@example.com"} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q", want)
		}
	}

	body := overShipmentBody(OverShipment{JobNumber: "J1", ShippedBy: "Sam <Lead>", Lines: []OverShipLine{{Description: "Hard Hat", Requested: 12, Applied: 5}}})
	if !strings.Contains(body, "<td>Hard Hat</td><td>12</td><td>5</td>") {
		t.Errorf("body missing line: %s", body)
	}
	if strings.Contains(body, "<Lead>") {
		t.Errorf("body not escaped: %s", body)
	}
}

package email

import (
	"strings"
	"testing"
)

func TestNewSMTPSenderValidation(t *testing.T) {
	if _, err := NewSMTPSender("", 0, "", "", "from@uni.edu", "", false); err == nil {
		t.Fatal("expected error for empty host")
	}
	if _, err := NewSMTPSender("smtp.uni.edu", 0, "", "", "", "", false); err == nil {
		t.Fatal("expected error for empty from")
	}

	sender, err := NewSMTPSender("smtp.uni.edu", 0, "", "", "from@uni.edu", "", false)
	if err != nil {
		t.Fatalf("expected valid sender, got %v", err)
	}
	if sender.port != 587 {
		t.Fatalf("expected default port 587, got %d", sender.port)
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := buildMessage("from@uni.edu", "Uni Match", "to@uni.edu", "Credit purchase receipt", "body text")

	for _, want := range []string{
		"From: Uni Match <from@uni.edu>",
		"To: to@uni.edu",
		"Subject: Credit purchase receipt",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
	if !strings.HasSuffix(msg, "\r\n\r\nbody text") {
		t.Fatalf("body not separated from headers:\n%s", msg)
	}
}

func TestBuildMessageWithoutFromName(t *testing.T) {
	msg := buildMessage("from@uni.edu", "", "to@uni.edu", "s", "b")
	if !strings.Contains(msg, "From: from@uni.edu\r\n") {
		t.Fatalf("expected bare from header:\n%s", msg)
	}
}

package message

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSubmission(t *testing.T) {
	got := Submission("me@x.com", "New message", map[string]string{
		"lastName":  "Smith",
		"firstName": "Jo",
		"password":  "abcd1234",
	}, "password")

	want := Email{
		To:      []string{"me@x.com"},
		Subject: "New message",
		Text:    "firstName: Jo\nlastName: Smith\n",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Submission mismatch (-want +got):\n%s", diff)
	}
}

func TestLogOutbox(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	o := LogOutbox{Log: zap.New(core).Sugar()}

	if err := o.EnqueueEmail(context.Background(), Email{To: []string{"a@b.c"}, Subject: "hi", Text: "secret body"}); err != nil {
		t.Fatal(err)
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].Message != "email queued" {
		t.Fatalf("entries = %+v", entries)
	}
	for _, f := range entries[0].Context {
		if f.String == "secret body" {
			t.Fatal("body logged")
		}
	}
}

func TestLogOutbox_NoRecipient(t *testing.T) {
	err := LogOutbox{}.EnqueueEmail(context.Background(), Email{Subject: "x"})
	if !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("err = %v", err)
	}
}

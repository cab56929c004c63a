package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"tx", Transmitter},
		{"transmitter", Transmitter},
		{"rx", Receiver},
		{"receiver", Receiver},
		{"both", Both},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseRole("echo"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("ParseRole(echo): got %v, want ErrInvalidConfig", err)
	}
}

func TestRoleDirections(t *testing.T) {
	if !Transmitter.Sends() || Transmitter.Receives() {
		t.Fatalf("transmitter directions wrong")
	}
	if Receiver.Sends() || !Receiver.Receives() {
		t.Fatalf("receiver directions wrong")
	}
	if !Both.Sends() || !Both.Receives() {
		t.Fatalf("both directions wrong")
	}
}

func TestRoleString(t *testing.T) {
	if Transmitter.String() != "transmitter" || Both.String() != "both" {
		t.Fatalf("unexpected role strings")
	}
}

package commands

import (
	"errors"
	"testing"
)

func TestParseTaskNum_Valid(t *testing.T) {
	num, err := ParseTaskNum([]string{"12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 12 {
		t.Errorf("expected 12, got %d", num)
	}
}

func TestParseTaskNum_Required(t *testing.T) {
	_, err := ParseTaskNum(nil)
	if !errors.Is(err, ErrTaskNumRequired) {
		t.Errorf("expected ErrTaskNumRequired, got %v", err)
	}
}

func TestParseTaskNum_Errors(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr string
	}{
		{[]string{"a1"}, "invalid task number: a1"},
		{[]string{"-1"}, "invalid task number: -1"},
		{[]string{"٣"}, "invalid task number: ٣"},
		{[]string{"0"}, "task number out of range: 0"},
		{[]string{"1", "2"}, "unexpected argument: 2"},
		{[]string{"99999999999999999999"}, "invalid task number: 99999999999999999999"},
	}

	for _, tt := range tests {
		_, err := ParseTaskNum(tt.args)
		if err == nil {
			t.Errorf("ParseTaskNum(%q): expected error", tt.args)
			continue
		}
		if err.Error() != tt.wantErr {
			t.Errorf("ParseTaskNum(%q): expected %q, got %q", tt.args, tt.wantErr, err.Error())
		}
	}
}

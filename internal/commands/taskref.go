package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskNumRequired indicates no task number was provided.
var ErrTaskNumRequired = errors.New("task number required")

// ParseTaskNum parses the 1-based task number from args, as printed by
// the list command.
//
// Parsing rules:
// 1. No args → error: task number required
// 2. First arg all digits and >= 1 → that number
// 3. More than one arg → error: unexpected argument: <arg>
// 4. Otherwise → error: invalid task number: <arg>
func ParseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskNumRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	num, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	if num < 1 {
		return 0, fmt.Errorf("task number out of range: %d", num)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

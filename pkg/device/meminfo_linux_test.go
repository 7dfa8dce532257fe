//go:build linux

package device

import (
	"bufio"
	"math"
	"strings"
	"testing"
)

func TestParseMemTotal(t *testing.T) {
	input := "MemTotal:        2097152 kB\nMemFree:          123456 kB\n"
	got := parseMemTotal(bufio.NewScanner(strings.NewReader(input)))
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("parseMemTotal() = %v, want 2.0", got)
	}

	if got := parseMemTotal(bufio.NewScanner(strings.NewReader("MemFree: 1 kB\n"))); got != 0 {
		t.Errorf("parseMemTotal() without MemTotal = %v, want 0", got)
	}
}

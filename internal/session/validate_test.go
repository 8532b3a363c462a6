package session

import "testing"

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"123-456-7890", true},
		{"12345", false},
		{"(555) 012 3456", true},
		{"5550123456", true},
		{"55501234567", false},
		{"", false},
		{"abc", false},
	}
	for _, c := range cases {
		if got := ValidatePhone(c.in); got != c.want {
			t.Fatalf("ValidatePhone(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestValidateName(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"A", false},
		{"Jo", true},
		{"Jo123", false},
		{"Jo Smith", true},
		{"  Jo  ", true},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidateName(c.in); got != c.want {
			t.Fatalf("ValidateName(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

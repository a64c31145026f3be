package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(555) 123-4567", "(555) 123-4567"}, // invalid US number, kept as-is
		{"+1 212 555 0123", "+12125550123"},
		{"  +12125550123  ", "+12125550123"},
		{"", ""},
		{"Web Call", "Web Call"},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.in); got != tc.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

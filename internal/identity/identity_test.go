package identity

import "testing"

func TestIsCLICommandToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"eterm", true},
		{" ETERM ", true},
		{"et", true},
		{"", false},
		{"tmux", false},
	}
	for _, tc := range tests {
		if got := IsCLICommandToken(tc.token); got != tc.want {
			t.Fatalf("IsCLICommandToken(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

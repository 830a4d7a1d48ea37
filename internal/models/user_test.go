package models

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Priya Sharma", "Priya S."},
		{"Arun Kumar Mehta", "Arun M."},
		{"Madonna", "Madonna"},
		{"  Rohan   Das  ", "Rohan D."},
		{"", ""},
	}

	for _, tt := range tests {
		u := User{Name: tt.name}
		if got := u.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

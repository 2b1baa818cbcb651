package middleware

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		loggedIn  bool
		isAdmin   bool
		adminOnly bool
		want      Decision
	}{
		{"anonymous on public screen", false, false, false, RedirectLogin},
		{"anonymous on admin screen", false, false, true, RedirectLogin},
		{"user on protected screen", true, false, false, Allow},
		{"user on admin screen", true, false, true, RedirectHome},
		{"admin on admin screen", true, true, true, Allow},
		{"admin on protected screen", true, true, false, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.loggedIn, tt.isAdmin, tt.adminOnly)
			if got != tt.want {
				t.Errorf("Decide(%v, %v, %v) = %v, want %v",
					tt.loggedIn, tt.isAdmin, tt.adminOnly, got, tt.want)
			}
		})
	}
}

func TestLoginRedirect(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"", "/login"},
		{"/admin", "/login?from=%2Fadmin"},
		{"/admin/songs/edit/42", "/login?from=%2Fadmin%2Fsongs%2Fedit%2F42"},
	}

	for _, tt := range tests {
		if got := LoginRedirect(tt.from); got != tt.want {
			t.Errorf("LoginRedirect(%q) = %q, want %q", tt.from, got, tt.want)
		}
	}
}

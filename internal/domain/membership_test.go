package domain

import "testing"

func TestParseRole(t *testing.T) {
	testCases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"MEMBER", RoleMember, true},
		{"admin", RoleAdmin, true},
		{" owner ", RoleOwner, true},
		{"None", RoleNone, true},
		{"", "", false},
		{"superuser", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseRole(tc.in)
			if ok != tc.ok {
				t.Fatalf("ParseRole(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRoleIsNone(t *testing.T) {
	if !RoleNone.IsNone() {
		t.Error("RoleNone.IsNone() = false")
	}
	if !Role("").IsNone() {
		t.Error(`Role("").IsNone() = false`)
	}
	if RoleMember.IsNone() {
		t.Error("RoleMember.IsNone() = true")
	}
}

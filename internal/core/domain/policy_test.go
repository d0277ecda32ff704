package domain

import "testing"

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name    string
		actor   Actor
		ownerID string
		want    bool
	}{
		{"owner", Actor{ID: "u1", Role: RoleVendor}, "u1", true},
		{"non-owner", Actor{ID: "u2", Role: RoleVendor}, "u1", false},
		{"staff non-owner", Actor{ID: "u2", Role: RoleClient, IsStaff: true}, "u1", true},
		{"staff ownerless", Actor{ID: "u2", IsStaff: true}, "", true},
		{"admin role without staff flag", Actor{ID: "u2", Role: RoleAdmin}, "u1", false},
		{"ownerless non-staff", Actor{ID: "u1", Role: RoleVendor}, "", false},
		{"anonymous", Actor{}, "u1", false},
		{"anonymous ownerless", Actor{}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanMutate(tc.actor, tc.ownerID); got != tc.want {
				t.Fatalf("CanMutate(%+v, %q) = %v, want %v", tc.actor, tc.ownerID, got, tc.want)
			}
		})
	}
}

func TestCanCreateProducts(t *testing.T) {
	if !CanCreateProducts(Actor{ID: "u1", Role: RoleVendor}) {
		t.Fatalf("vendor should be allowed to create products")
	}
	if !CanCreateProducts(Actor{ID: "u1", Role: RoleClient, IsStaff: true}) {
		t.Fatalf("staff should be allowed to create products")
	}
	if CanCreateProducts(Actor{ID: "u1", Role: RoleClient}) {
		t.Fatalf("plain client should not be allowed to create products")
	}
	if CanCreateProducts(Actor{ID: "u1", Role: RoleAdmin}) {
		t.Fatalf("ADMIN role without staff flag should not create products")
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := map[string]string{
		"prod001":          "PROD001",
		"  PROD002  ":      "PROD002",
		"  prod003  ":      "PROD003",
		"  prod-001_test ": "PROD-001_TEST",
		"   ":              "",
	}
	for in, want := range cases {
		if got := NormalizeCode(in); got != want {
			t.Fatalf("NormalizeCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidCode(t *testing.T) {
	for _, code := range []string{"ABC-123-XYZ", "123456", "A_B-C"} {
		if !ValidCode(code) {
			t.Fatalf("expected %q to be valid", code)
		}
	}
	for _, code := range []string{"prod-001", "PROD 001", "", "ÑAME"} {
		if ValidCode(code) {
			t.Fatalf("expected %q to be invalid", code)
		}
	}
}

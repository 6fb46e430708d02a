package domain

import "testing"

func TestRoleLevels_TotalOrder(t *testing.T) {
	wantLevels := map[Role]int{
		RolePlayer:    0,
		RoleVIP:       1,
		RoleModerator: 2,
		RoleAdmin:     3,
		RoleOwner:     4,
	}

	for role, want := range wantLevels {
		if got := role.Level(); got != want {
			t.Errorf("levelOf(%s) = %d, want %d", role, got, want)
		}
	}

	for i := 1; i < len(Roles); i++ {
		if Roles[i-1].Level() >= Roles[i].Level() {
			t.Fatalf("role order broken: %s (%d) >= %s (%d)",
				Roles[i-1], Roles[i-1].Level(), Roles[i], Roles[i].Level())
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, role := range Roles {
		if !role.Valid() {
			t.Errorf("expected %s to be valid", role)
		}
	}
	for _, bad := range []Role{"", "player", "SUPERADMIN", "OWNER "} {
		if bad.Valid() {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
	if lvl := Role("SUPERADMIN").Level(); lvl != -1 {
		t.Errorf("unknown role level = %d, want -1", lvl)
	}
}

func TestAuthorize(t *testing.T) {
	for _, role := range Roles {
		user := &User{SteamID: "1", Role: role}
		for threshold := LevelPlayer; threshold <= LevelOwner; threshold++ {
			want := role.Level() >= threshold
			if got := Authorize(user, threshold); got != want {
				t.Errorf("Authorize(%s, %d) = %v, want %v", role, threshold, got, want)
			}
		}
	}

	if Authorize(nil, LevelPlayer) {
		t.Error("expected nil user to never be authorized")
	}
}

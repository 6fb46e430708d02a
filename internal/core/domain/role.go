package domain

// Role is a community rank. Roles form a strict total order by level and
// every authorization decision in the system is a level comparison.
type Role string

const (
	RolePlayer    Role = "PLAYER"
	RoleVIP       Role = "VIP"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
	RoleOwner     Role = "OWNER"
)

// Authorization thresholds used by the privileged endpoints.
const (
	LevelPlayer    = 0
	LevelVIP       = 1
	LevelModerator = 2
	LevelAdmin     = 3
	LevelOwner     = 4
)

// RoleInfo is display metadata attached to a role. It is served verbatim to
// the presentation layer and never consulted for authorization.
type RoleInfo struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Level int    `json:"level"`
}

var roleInfos = map[Role]RoleInfo{
	RolePlayer:    {Name: "Игрок", Color: "#b0b0c0", Level: LevelPlayer},
	RoleVIP:       {Name: "VIP", Color: "#ffd700", Level: LevelVIP},
	RoleModerator: {Name: "Модератор", Color: "#4caf50", Level: LevelModerator},
	RoleAdmin:     {Name: "🛡️ Админ", Color: "#ffaa00", Level: LevelAdmin},
	RoleOwner:     {Name: "👑 Владелец", Color: "#ff4757", Level: LevelOwner},
}

// Roles lists every valid role in ascending level order.
var Roles = []Role{RolePlayer, RoleVIP, RoleModerator, RoleAdmin, RoleOwner}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, ok := roleInfos[r]
	return ok
}

// Level returns the numeric rank of the role. An unknown role ranks below
// every valid one.
func (r Role) Level() int {
	info, ok := roleInfos[r]
	if !ok {
		return -1
	}
	return info.Level
}

// Info returns the display metadata for the role.
func (r Role) Info() RoleInfo {
	return roleInfos[r]
}

// Authorize reports whether u may perform an operation gated at minLevel.
func Authorize(u *User, minLevel int) bool {
	return u != nil && u.Role.Level() >= minLevel
}

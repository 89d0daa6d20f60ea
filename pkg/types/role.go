package types

type RoleName string

const (
	RoleFamily RoleName = "family"
	RoleNGO    RoleName = "ngo"
	RolePolice RoleName = "police"
)

type Role struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

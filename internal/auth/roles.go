package auth

// Role names as stored in the roles table and returned in role_name.
const (
	RoleOwner = "gym_owner"
	RoleStaff = "gym_staff"
	RoleSocio = "gym_socio"
)

package entity

// Roles válidos en el token JWT. La emisión de tokens vive fuera de este servicio;
// aquí solo se verifican.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

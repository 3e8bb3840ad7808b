package domain

// BootstrapData describes the first administrator created on an empty system.
type BootstrapData struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Phone     string
	Password  string
}

package domain

// Student models an end-user who submits maintenance requests. The core
// never inspects the credential beyond pass-through to the auth layer.
type Student struct {
	StudentID    string
	Name         string
	PasswordHash string
}

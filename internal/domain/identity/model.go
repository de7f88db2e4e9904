package identity

// AuthStatus drives which content the views are allowed to render
type AuthStatus string

const (
	StatusPending       AuthStatus = "pending"
	StatusAuthenticated AuthStatus = "authenticated"
	StatusUninitialized AuthStatus = "uninitialized"
	StatusError         AuthStatus = "error"
)

// Identity is the signed-in principal
type Identity struct {
	UID       string `json:"uid"`
	Anonymous bool   `json:"anonymous"`
}

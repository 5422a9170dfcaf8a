package domain

// Role is the privilege level attached to a storefront account.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleMaintainer     Role = "maintainer"
	RoleServiceAccount Role = "service_account"
)

// IsKnown reports whether r is one of the storefront roles.
func (r Role) IsKnown() bool {
	switch r {
	case RoleAdmin, RoleMaintainer, RoleServiceAccount:
		return true
	}
	return false
}

// tokenPrefix precedes the username in issued tokens.
const tokenPrefix = "fake-token-for-"

// IssueToken builds the session token handed out at login.
// The token is opaque and unsigned.
func IssueToken(username string) string {
	return tokenPrefix + username
}

// Credential is the caller identity carried by a request.
// Role is empty when the credential came from a bearer header rather than a login.
type Credential struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// UserRecord is one entry of the credential table.
type UserRecord struct {
	Username     string
	PasswordHash string // Argon2id encoded hash, never exposed
	Role         Role
}

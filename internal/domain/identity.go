package domain

// Identity is the authenticated caller extracted from a validated token.
// It is request-scoped and never persisted.
type Identity struct {
	SubjectID int64
	Role      RoleName
}

package model

// SessionIdentity is what the session layer yields for a logged in visitor.
type SessionIdentity struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"user_name"`
}

type PrincipalKind int

const (
	Anonymous PrincipalKind = iota
	Authenticated
	Administrator
)

func (k PrincipalKind) String() string {
	switch k {
	case Authenticated:
		return "authenticated"
	case Administrator:
		return "administrator"
	default:
		return "anonymous"
	}
}

// Principal is derived once per request and passed into every operation that
// needs a capability check. UserID and DisplayName are empty for Anonymous.
type Principal struct {
	Kind        PrincipalKind
	UserID      string
	DisplayName string
}

func AnonymousPrincipal() Principal {
	return Principal{Kind: Anonymous}
}

func (p Principal) IsAuthenticated() bool {
	return p.Kind == Authenticated || p.Kind == Administrator
}

func (p Principal) IsAdmin() bool {
	return p.Kind == Administrator
}

package domain

// Principal represents an authenticated caller for the lifetime of one
// request.
type Principal struct {
	Username    string
	UserID      int64
	Authorities []string
}

// HasAuthority reports whether the principal carries the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	if p == nil {
		return false
	}
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

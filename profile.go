package authclient

import (
	"encoding/json"
)

// UserProfile is the authenticated user's profile as issued by the auth
// service. ID, Username and Role are the fields this package reasons about;
// anything else the service sends rides along opaquely in Extra and survives
// serialization and partial updates untouched.
type UserProfile struct {
	ID       int64
	Username string
	Role     UserRole
	Extra    map[string]any
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Clone returns a copy safe to mutate independently of the receiver.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	out := &UserProfile{
		ID:       p.ID,
		Username: p.Username,
		Role:     p.Role,
	}
	if p.Extra != nil {
		out.Extra = make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Merge shallow-merges a partial update into the profile. Known fields are
// updated when present in the patch, everything else lands in Extra. The
// patch shape is not validated, matching the contract that profile extras
// are opaque to this package.
func (p *UserProfile) Merge(patch map[string]any) {
	if p == nil {
		return
	}
	for k, v := range patch {
		switch k {
		case "id":
			if id, ok := asInt64(v); ok {
				p.ID = id
			}
		case "username":
			if s, ok := v.(string); ok {
				p.Username = s
			}
		case "role":
			if s, ok := v.(string); ok {
				p.Role = UserRole(s)
			}
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			p.Extra[k] = v
		}
	}
}

// MarshalJSON folds Extra into the same flat object the service emits.
func (p UserProfile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+3)
	for k, v := range p.Extra {
		out[k] = v
	}
	out["id"] = p.ID
	out["username"] = p.Username
	out["role"] = string(p.Role)
	return json.Marshal(out)
}

// UnmarshalJSON lifts the known fields and keeps the remainder in Extra.
func (p *UserProfile) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = UserProfile{}
	p.Merge(raw)
	return nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

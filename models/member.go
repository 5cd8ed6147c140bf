package models

// Member is the identity decoded from the gateway's bearer token: the acting
// platform member, the community the interaction happened in, and the role
// memberships the gateway saw at interaction time.
type Member struct {
	Member_ID    int64   `json:"memberId"`
	Community_ID int64   `json:"communityId"`
	Role_IDs     []int64 `json:"roleIds"`
	Admin        bool    `json:"admin"`
}

// HasRole reports whether the member holds the given role.
func (m Member) HasRole(roleID int64) bool {
	for _, id := range m.Role_IDs {
		if id == roleID {
			return true
		}
	}
	return false
}

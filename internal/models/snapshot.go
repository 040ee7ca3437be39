package models

// Snapshot is the financial context a chat query is answered from. A nil slice
// and an empty slice mean the same thing.
type Snapshot struct {
	Transactions  []Transaction  `json:"transactions,omitempty" yaml:"transactions,omitempty"`
	Accounts      []Account      `json:"accounts,omitempty" yaml:"accounts,omitempty"`
	Subscriptions []Subscription `json:"subscriptions,omitempty" yaml:"subscriptions,omitempty"`
}

// AccountTypes indexes account types by account id.
func (s Snapshot) AccountTypes() map[string]AccountType {
	out := make(map[string]AccountType, len(s.Accounts))
	for _, a := range s.Accounts {
		if a.ID != "" {
			out[a.ID] = a.Type.Normalize()
		}
	}
	return out
}

package model

// PassType identifies the product a pass was bought as.
type PassType string

const (
	PassSingle    PassType = "single"
	PassFiveClass PassType = "5-class"
	PassTenClass  PassType = "10-class"
	PassUnlimited PassType = "unlimited"
)

// UnlimitedSessions is the session count stored on unlimited passes.  The
// pass is still decremented per booking; the count is simply large enough
// not to run out within its validity window.
const UnlimitedSessions = 999

// PassProduct describes what purchasing a pass type grants.
type PassProduct struct {
	Type         PassType `json:"type"`
	Label        string   `json:"label"`
	Sessions     int      `json:"sessions"`
	ValidityDays int      `json:"validityDays"`
}

var passProducts = []PassProduct{
	{Type: PassSingle, Label: "Single Class Pass", Sessions: 1, ValidityDays: 30},
	{Type: PassFiveClass, Label: "5-Class Pass", Sessions: 5, ValidityDays: 60},
	{Type: PassTenClass, Label: "10-Class Pass", Sessions: 10, ValidityDays: 90},
	{Type: PassUnlimited, Label: "Unlimited Monthly Pass", Sessions: UnlimitedSessions, ValidityDays: 30},
}

// PassProducts returns the purchasable pass types in display order.
func PassProducts() []PassProduct {
	return append([]PassProduct(nil), passProducts...)
}

// ProductFor returns the product of t and whether t is a known pass type.
func ProductFor(t PassType) (PassProduct, bool) {
	for _, s := range passProducts {
		if s.Type == t {
			return s, true
		}
	}
	return PassProduct{}, false
}

// Pass is a prepaid entitlement to a number of class sessions.  Passes are
// never deleted: exhausted or expired passes stay in the owner's list.
type Pass struct {
	ID                string   `json:"id"`
	UserID            string   `json:"userId"`
	Type              PassType `json:"type"`
	RemainingSessions int      `json:"remainingSessions"`
	ExpiryDate        Date     `json:"expiryDate"`
}

// Usable reports whether the pass still has a session to spend.
func (p Pass) Usable() bool { return p.RemainingSessions > 0 }

// ExpiredOn reports whether the pass is past its expiry on day.  A pass is
// still valid on its expiry date itself.
func (p Pass) ExpiredOn(day Date) bool { return p.ExpiryDate.Before(day) }

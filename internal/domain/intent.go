package domain

// Intent represents the classified purpose of a user message
type Intent string

const (
	IntentSales    Intent = "sales"
	IntentSupport  Intent = "support"
	IntentGeneral  Intent = "general"
	IntentChitchat Intent = "chit-chat"
)

// IsValidIntent checks if an Intent is one of the known values
func IsValidIntent(i Intent) bool {
	switch i {
	case IntentSales, IntentSupport, IntentGeneral, IntentChitchat:
		return true
	}
	return false
}

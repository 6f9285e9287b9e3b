package realtime

import "crypto-storefront/internal/model"

var publicCollections = map[string]bool{
	CollectionProducts:   true,
	CollectionCategories: true,
	CollectionUpdates:    true,
	CollectionSettings:   true,
}

var ownedCollections = map[string]bool{
	CollectionOrders:    true,
	CollectionProposals: true,
}

// Collections lists every collection a stream may subscribe to.
func Collections() []string {
	return []string{
		CollectionUsers,
		CollectionProducts,
		CollectionCategories,
		CollectionOrders,
		CollectionProposals,
		CollectionUpdates,
		CollectionSettings,
	}
}

// AudienceFilter admits every event for admins. Other users see public
// collections and their own orders and proposals.
func AudienceFilter(userID string, admin bool) Filter {
	return func(ev Event) bool {
		if admin {
			return true
		}
		if ownedCollections[ev.Collection] {
			return ev.OwnerID != "" && ev.OwnerID == userID
		}
		if !publicCollections[ev.Collection] {
			return false
		}
		if p, ok := ev.Data.(*model.Product); ok && p.Hidden {
			return false
		}
		if c, ok := ev.Data.(*model.Category); ok && c.Hidden {
			return false
		}
		return true
	}
}

// Redact strips credentials from settings events bound for non-admins.
func Redact(ev Event, admin bool) Event {
	if admin {
		return ev
	}
	if s, ok := ev.Data.(model.Settings); ok {
		ev.Data = s.Public()
	}
	return ev
}

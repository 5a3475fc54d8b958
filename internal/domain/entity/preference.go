// Package entity defines the core business entities for the domain layer.
package entity

// Preference keys held in the local key-value store.
const (
	PrefFirstLaunch          = "first_launch"
	PrefGuestMode            = "guest_mode"
	PrefDefaultCurrency      = "default_currency"
	PrefLastSyncAt           = "last_sync_at"
	PrefNotificationsEnabled = "notifications_enabled"
	PrefSession              = "session"
)

// DefaultCurrency is the currency assumed before the user picks one.
const DefaultCurrency = "USD"

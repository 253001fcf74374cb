// Package common contains shared constants and sentinel errors used across
// StockGuard components.
package common

// SessionRecordKey is the fixed key the durable session record is stored
// under in the local key-value store. Absence of the key means Anonymous.
const SessionRecordKey = "stockguard_user"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "stockguard_session"

// DefaultPlan is the plan tier assigned to a freshly created identity.
const DefaultPlan = "Free Trial"

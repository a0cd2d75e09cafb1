package store

// Keys used by the session core in the persistent namespace. Values are
// always strings; booleans are stored as "true" or left absent.
const (
	KeyToken           = "token"
	KeyUser            = "user" // JSON-serialized identity
	KeyIsLoggedIn      = "isLoggedIn"
	KeyUserRole        = "userRole"
	KeyIsImpersonating = "isImpersonating"
	KeyAdminToken      = "adminToken"
	KeyAdminUser       = "adminUser" // JSON-serialized identity of the impersonating admin
	KeyAdminReferrer   = "adminReferrer"
)

// TrueValue is the stored representation of a set boolean flag.
const TrueValue = "true"

// Store is durable, synchronous key/value storage scoped to the client
// origin. Persistence is best-effort: implementations must never propagate
// write failures to callers, they log and carry on. The store has no
// knowledge of session or authorization rules.
type Store interface {
	// Write stores value under key, replacing any previous value.
	Write(key, value string)

	// Read returns the stored value and whether the key was present.
	Read(key string) (string, bool)

	// Remove deletes a key. Removing an absent key is a no-op.
	Remove(key string)
}

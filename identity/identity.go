package identity

import "strings"

// Role represents a marketplace account role. Roles arrive from the server as
// free-form strings; Normalize parses them into this closed set at the
// boundary so the rest of the core never compares raw strings.
type Role string

const (
	// Client-facing roles
	RoleClient        Role = "client"
	RoleAdvocate      Role = "advocate"
	RoleLegalProvider Role = "legal_provider"
	RoleUser          Role = "user"

	// Administrative roles
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleVerifier   Role = "verifier"
	RoleFinance    Role = "finance"
	RoleManager    Role = "manager"
	RoleTeamLead   Role = "teamlead"
	RoleHR         Role = "hr"

	// Support and operations roles
	RoleTelecaller   Role = "telecaller"
	RoleSupport      Role = "support"
	RoleCustomerCare Role = "customer_care"
	RoleChatSupport  Role = "chat_support"
	RoleLiveChat     Role = "live_chat"
	RoleCallSupport  Role = "call_support"
	RoleEmailSupport Role = "email_support"
	RoleDataEntry    Role = "data_entry"

	// Assistant and referral roles
	RolePersonalAssistant Role = "personal_assistant"
	RolePersonalAgent     Role = "personal_agent"
	RoleInfluencer        Role = "influencer"
	RoleMarketer          Role = "marketer"
	RoleMarketingAgency   Role = "marketing_agency"
)

// RoleUnknown is the zero role. It never matches any allow-list and grants
// no access.
const RoleUnknown Role = ""

var knownRoles = map[Role]struct{}{
	RoleClient: {}, RoleAdvocate: {}, RoleLegalProvider: {}, RoleUser: {},
	RoleAdmin: {}, RoleSuperAdmin: {}, RoleVerifier: {}, RoleFinance: {},
	RoleManager: {}, RoleTeamLead: {}, RoleHR: {},
	RoleTelecaller: {}, RoleSupport: {}, RoleCustomerCare: {},
	RoleChatSupport: {}, RoleLiveChat: {}, RoleCallSupport: {},
	RoleEmailSupport: {}, RoleDataEntry: {},
	RolePersonalAssistant: {}, RolePersonalAgent: {}, RoleInfluencer: {},
	RoleMarketer: {}, RoleMarketingAgency: {},
}

// Normalize lowercases and trims a raw role string. The result is only
// authoritative if Known reports true; unknown values normalize but still
// grant no access anywhere in the core.
func Normalize(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

// Known reports whether the role belongs to the closed role set.
func (r Role) Known() bool {
	_, ok := knownRoles[Normalize(string(r))]
	return ok
}

// Equal compares two roles case-insensitively.
func (r Role) Equal(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// Admin reports whether the role is administrator-class (may impersonate).
func (r Role) Admin() bool {
	n := Normalize(string(r))
	return n == RoleAdmin || n == RoleSuperAdmin
}

// Identity represents one authenticated principal. The JSON shape matches the
// persisted "user" record exactly so a stored identity from a previous
// process round-trips unchanged.
type Identity struct {
	ID                 string `json:"id,omitempty"`              // Opaque unique identifier
	DisplayID          string `json:"uniqueDisplayId,omitempty"` // Human-facing member code
	Name               string `json:"name,omitempty"`
	Email              string `json:"email,omitempty"`
	Role               Role   `json:"role,omitempty"`
	Plan               string `json:"plan,omitempty"`               // Subscription tier label
	Premium            bool   `json:"isPremium,omitempty"`          // Server-asserted premium flag
	MustChangePassword bool   `json:"mustChangePassword,omitempty"` // One-shot forced password flow
}

// NormalizedRole returns the identity's role normalized for authorization
// comparisons.
func (i Identity) NormalizedRole() Role {
	return Normalize(string(i.Role))
}

// Merge returns a copy of the identity with the non-nil fields of the patch
// applied. Authentication state never lives on the identity, so merging can
// never change whether the session is authenticated.
func (i Identity) Merge(patch Patch) Identity {
	out := i
	if patch.DisplayID != nil {
		out.DisplayID = *patch.DisplayID
	}
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.Role != nil {
		out.Role = Normalize(*patch.Role)
	}
	if patch.Plan != nil {
		out.Plan = *patch.Plan
	}
	if patch.Premium != nil {
		out.Premium = *patch.Premium
	}
	if patch.MustChangePassword != nil {
		out.MustChangePassword = *patch.MustChangePassword
	}
	return out
}

// Patch carries server-confirmed fields for a refresh operation. Nil fields
// are left untouched; the identity's ID is immutable.
type Patch struct {
	DisplayID          *string
	Name               *string
	Email              *string
	Role               *string
	Plan               *string
	Premium            *bool
	MustChangePassword *bool
}

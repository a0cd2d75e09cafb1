package routes

import "github.com/lawbridge/go-session-core/identity"

// Destination paths. The public landing path doubles as the redirect target
// for every denied navigation: disallowed roles and anonymous visitors are
// sent to the same place so protected areas are not discoverable.
const (
	PublicLanding = "/"
	Login         = "/login"

	ClientDashboard       = "/client/dashboard"
	AdvocateDashboard     = "/advocate/dashboard"
	ProviderDashboard     = "/provider/dashboard"
	AdminDashboard        = "/admin/dashboard"
	HRDashboard           = "/hr/dashboard"
	FinanceDashboard      = "/finance/dashboard"
	SupportDashboard      = "/support/dashboard"
	CustomerCareDashboard = "/customer-care/dashboard"
	ReferralDashboard     = "/referral/dashboard"
	VerifierDashboard     = "/verifier/dashboard"
	ManagerDashboard      = "/manager/dashboard"
	DataEntryDashboard    = "/data-entry/dashboard"
	AssistantDashboard    = "/assistant/dashboard"
)

// AdminHome is where an administrator lands when no better destination is
// recorded, including the fail-open switch-back path.
const AdminHome = AdminDashboard

var landingPaths = map[identity.Role]string{
	identity.RoleClient:        ClientDashboard,
	identity.RoleUser:          ClientDashboard,
	identity.RoleAdvocate:      AdvocateDashboard,
	identity.RoleLegalProvider: ProviderDashboard,

	identity.RoleAdmin:      AdminDashboard,
	identity.RoleSuperAdmin: AdminDashboard,
	identity.RoleVerifier:   VerifierDashboard,
	identity.RoleFinance:    FinanceDashboard,
	identity.RoleManager:    ManagerDashboard,
	identity.RoleTeamLead:   ManagerDashboard,
	identity.RoleHR:         HRDashboard,

	identity.RoleTelecaller:   SupportDashboard,
	identity.RoleSupport:      SupportDashboard,
	identity.RoleCustomerCare: CustomerCareDashboard,
	identity.RoleChatSupport:  CustomerCareDashboard,
	identity.RoleLiveChat:     CustomerCareDashboard,
	identity.RoleCallSupport:  CustomerCareDashboard,
	identity.RoleEmailSupport: CustomerCareDashboard,
	identity.RoleDataEntry:    DataEntryDashboard,

	identity.RolePersonalAssistant: AssistantDashboard,
	identity.RolePersonalAgent:     AssistantDashboard,
	identity.RoleInfluencer:        ReferralDashboard,
	identity.RoleMarketer:          ReferralDashboard,
	identity.RoleMarketingAgency:   ReferralDashboard,
}

// LandingPath maps a role to its default post-login destination. Unknown
// roles land on the public page rather than failing.
func LandingPath(role identity.Role) string {
	if path, ok := landingPaths[identity.Normalize(string(role))]; ok {
		return path
	}
	return PublicLanding
}

// Navigator is how the session core requests navigations. Replace indicates
// the current history entry should be replaced rather than pushed, so a
// redirect source (e.g. the login screen) is not reachable via back-button.
type Navigator interface {
	// Current returns the path currently being viewed.
	Current() string

	// Navigate moves to path.
	Navigate(path string, replace bool)
}

package routes_test

import (
	"testing"

	"github.com/lawbridge/go-session-core/identity"
	"github.com/lawbridge/go-session-core/routes"
	"github.com/stretchr/testify/require"
)

func TestLandingPath(t *testing.T) {
	tests := []struct {
		role identity.Role
		want string
	}{
		{role: identity.RoleClient, want: routes.ClientDashboard},
		{role: "CLIENT", want: routes.ClientDashboard},
		{role: identity.RoleAdvocate, want: routes.AdvocateDashboard},
		{role: identity.RoleLegalProvider, want: routes.ProviderDashboard},
		{role: identity.RoleAdmin, want: routes.AdminDashboard},
		{role: "SuperAdmin", want: routes.AdminDashboard},
		{role: identity.RoleHR, want: routes.HRDashboard},
		{role: identity.RoleChatSupport, want: routes.CustomerCareDashboard},
		{role: identity.RoleInfluencer, want: routes.ReferralDashboard},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, routes.LandingPath(tc.role), "role %q", tc.role)
	}
}

func TestLandingPathUnknownRoleDefaults(t *testing.T) {
	require.Equal(t, routes.PublicLanding, routes.LandingPath("warlock"))
	require.Equal(t, routes.PublicLanding, routes.LandingPath(identity.RoleUnknown))
}

func TestEveryKnownRoleHasALanding(t *testing.T) {
	all := []identity.Role{
		identity.RoleClient, identity.RoleAdvocate, identity.RoleLegalProvider,
		identity.RoleUser, identity.RoleAdmin, identity.RoleSuperAdmin,
		identity.RoleVerifier, identity.RoleFinance, identity.RoleManager,
		identity.RoleTeamLead, identity.RoleHR, identity.RoleTelecaller,
		identity.RoleSupport, identity.RoleCustomerCare, identity.RoleChatSupport,
		identity.RoleLiveChat, identity.RoleCallSupport, identity.RoleEmailSupport,
		identity.RoleDataEntry, identity.RolePersonalAssistant,
		identity.RolePersonalAgent, identity.RoleInfluencer,
		identity.RoleMarketer, identity.RoleMarketingAgency,
	}
	for _, role := range all {
		require.NotEqual(t, routes.PublicLanding, routes.LandingPath(role),
			"role %q should have a dedicated landing page", role)
	}
}

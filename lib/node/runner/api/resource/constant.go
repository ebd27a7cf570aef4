package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLProposals      = APIPrefix + APIVersionV1 + "/proposals"
	URLProposal       = APIPrefix + APIVersionV1 + "/proposals/{id}"
	URLProposalVoters = APIPrefix + APIVersionV1 + "/proposals/{id}/voters"
	URLInvocations    = APIPrefix + APIVersionV1 + "/invocations"
	URLInvocation     = APIPrefix + APIVersionV1 + "/invocations/{id}"
	URLAdmin          = APIPrefix + APIVersionV1 + "/admin"
	URLNodeInfo       = APIPrefix + APIVersionV1 + "/"
)

package client

import (
	"encoding/json"
)

type Problem struct {
	Type     string                     `json:"type"`
	Title    string                     `json:"title"`
	Status   int                        `json:"status"`
	Detail   string                     `json:"detail,omitempty"`
	Instance string                     `json:"instance,omitempty"`
	Code     uint                       `json:"code,omitempty"`
	Data     map[string]json.RawMessage `json:"data,omitempty"`
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type NodeInfo struct {
	Links struct {
		Self        Link `json:"self"`
		Proposals   Link `json:"proposals"`
		Admin       Link `json:"admin"`
		Invocations Link `json:"invocations"`
	} `json:"_links"`

	Node           string `json:"node"`
	Endpoint       string `json:"endpoint"`
	NetworkID      string `json:"network_id"`
	Contract       string `json:"contract"`
	Gated          bool   `json:"gated"`
	ClosePolicy    string `json:"close_policy"`
	LedgerSequence uint64 `json:"ledger_sequence"`
	ProposalCount  uint64 `json:"proposal_count"`
	Admin          string `json:"admin,omitempty"`
	Version        struct {
		Version   string `json:"version"`
		GitCommit string `json:"git_commit"`
		GitState  string `json:"git_state"`
		BuildDate string `json:"build_date"`
		GoVersion string `json:"go_version"`
	} `json:"version"`
}

type Admin struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Address string `json:"address"`
}

type Proposal struct {
	Links struct {
		Self   Link `json:"self"`
		Voters Link `json:"voters"`
	} `json:"_links"`

	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	YesVotes    uint64 `json:"yes_votes"`
	NoVotes     uint64 `json:"no_votes"`
	IsActive    bool   `json:"is_active"`
}

type ProposalsPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Proposal `json:"records"`
	} `json:"_embedded"`
}

type Voter struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	ProposalID uint64 `json:"proposal_id"`
	Address    string `json:"address"`
}

type VotersPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Voter `json:"records"`
	} `json:"_embedded"`
}

type InvocationResult struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Hash           string          `json:"hash"`
	Method         string          `json:"method"`
	Value          json.RawMessage `json:"value"`
	LedgerSequence uint64          `json:"ledger_sequence"`
}

type InvocationHistory struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Hash            string   `json:"hash"`
	ContractAddress string   `json:"contract_address"`
	Method          string   `json:"method"`
	Args            []string `json:"args"`
	Signers         []string `json:"signers"`
	LedgerSequence  uint64   `json:"ledger_sequence"`
	Committed       string   `json:"committed"`
}

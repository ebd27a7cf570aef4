package voting

import (
	"strings"

	"boscoin.io/votebook/lib/common"
)

const (
	KeyAdmin          = "vb-admin"
	KeyProposalCount  = "vb-count"
	KeyLedgerSequence = "vb-ledger-seq"

	ProposalPrefix = "vb-proposal-" // vb-proposal-{id}
	VotedPrefix    = "vb-voted-"    // vb-voted-{id}-{voter}
	TTLPrefix      = "vb-ttl-"      // vb-ttl-{key}
)

func GetProposalKey(id uint64) string {
	return ProposalPrefix + common.FormatUint64Key(id)
}

func GetVotedKeyPrefix(id uint64) string {
	return VotedPrefix + common.FormatUint64Key(id) + "-"
}

func GetVotedKey(id uint64, voter string) string {
	return GetVotedKeyPrefix(id) + voter
}

func GetTTLKey(key string) string {
	return TTLPrefix + key
}

// GetVoterFromVotedKey returns the voter address of `vb-voted-` key.
func GetVoterFromVotedKey(id uint64, key string) (string, bool) {
	prefix := GetVotedKeyPrefix(id)
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}

	return key[len(prefix):], true
}

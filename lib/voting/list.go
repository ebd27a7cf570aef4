package voting

import (
	"encoding/json"
	"strconv"

	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/storage"
)

// ParseProposalID parses the proposal id of api path or contract argument.
func ParseProposalID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.BadArgument.Clone().SetData("proposal-id", s)
	}

	return id, nil
}

// WalkProposals walks the stored proposals in the order of id. `cursor` is
// the first proposal id to visit; 0 starts from the first, or the last in
// reverse.
func WalkProposals(st *storage.LevelDBBackend, cursor uint64, limit uint64, reverse bool, f func(Proposal) (bool, error)) error {
	var cursorKey string
	if cursor > 0 {
		cursorKey = GetProposalKey(cursor)
	}

	option := storage.NewWalkOption(cursorKey, limit, reverse)
	return st.Walk(ProposalPrefix, option, func(key, value []byte) (bool, error) {
		var p Proposal
		if err := json.Unmarshal(value, &p); err != nil {
			return false, err
		}
		return f(p)
	})
}

// WalkVoters walks the addresses which voted on the proposal, `id`, in
// lexical order. `cursor` is the first voter address to visit.
func WalkVoters(st *storage.LevelDBBackend, id uint64, cursor string, limit uint64, reverse bool, f func(string) (bool, error)) error {
	var cursorKey string
	if len(cursor) > 0 {
		cursorKey = GetVotedKey(id, cursor)
	}

	option := storage.NewWalkOption(cursorKey, limit, reverse)
	return st.Walk(GetVotedKeyPrefix(id), option, func(key, value []byte) (bool, error) {
		voter, ok := GetVoterFromVotedKey(id, string(key))
		if !ok {
			return true, nil
		}
		return f(voter)
	})
}

/*
	CastVote checks the vote with the checker functions below, in order:
	1. CheckNotVoted: the voter did not vote on the proposal yet
	2. CheckProposalExists: the proposal was created
	3. CheckProposalActive: the proposal is not closed
	No record is written until every check passes.
*/

package voting

import (
	"strconv"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/errors"
)

type VoteChecker struct {
	common.DefaultChecker

	Contract   *Contract
	Env        *Env
	ProposalID uint64
	Voter      string
	Log        logging.Logger

	Proposal Proposal
}

// CheckNotVoted checks the vote record of the voter does not exist.
func CheckNotVoted(c common.Checker, args ...interface{}) error {
	checker := c.(*VoteChecker)

	exists, err := checker.Env.Store.Has(GetVotedKey(checker.ProposalID, checker.Voter))
	if err != nil {
		return err
	} else if exists {
		return errors.AlreadyVoted
	}

	return nil
}

// CheckProposalExists loads the proposal.
func CheckProposalExists(c common.Checker, args ...interface{}) error {
	checker := c.(*VoteChecker)

	proposal, err := checker.Contract.ViewProposal(checker.Env, checker.ProposalID)
	if err != nil {
		return err
	} else if proposal.IsNotFound() {
		return errors.InvalidProposal
	}

	checker.Proposal = proposal

	return nil
}

func CheckProposalActive(c common.Checker, args ...interface{}) error {
	checker := c.(*VoteChecker)

	if !checker.Proposal.IsActive {
		return errors.ProposalClosed
	}

	return nil
}

var DefaultVoteCheckerFuncs = []common.CheckerFunc{
	CheckNotVoted,
	CheckProposalExists,
	CheckProposalActive,
}

// CastVote records the vote of `voter`; `vote` true counts as yes.
func (c *Contract) CastVote(env *Env, proposalID uint64, vote bool, voter string) error {
	if err := env.Auth.RequireAuth(voter); err != nil {
		return err
	}

	checker := &VoteChecker{
		DefaultChecker: common.DefaultChecker{Funcs: DefaultVoteCheckerFuncs},
		Contract:       c,
		Env:            env,
		ProposalID:     proposalID,
		Voter:          voter,
		Log:            c.log.New(logging.Ctx{"proposal": proposalID, "voter": voter}),
	}

	deferFunc := func(n int, _ common.Checker, err error) {
		if err != nil {
			checker.Log.Debug("vote rejected", "checker", n, "error", err)
		}
	}
	if err := common.RunChecker(checker, deferFunc); err != nil {
		return err
	}

	proposal := checker.Proposal
	if vote {
		proposal.YesVotes++
	} else {
		proposal.NoVotes++
	}

	if err := c.put(env, GetProposalKey(proposalID), proposal); err != nil {
		return err
	}
	if err := c.put(env, GetVotedKey(proposalID, voter), true); err != nil {
		return err
	}

	env.emit(
		observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, ""),
		observer.NewEvent(observer.ResourceProposal, observer.ConditionID, strconv.FormatUint(proposalID, 10)),
	)
	checker.Log.Info("vote cast", "vote", vote, "yes", proposal.YesVotes, "no", proposal.NoVotes)

	return nil
}

// HasVoted reports whether `voter` already voted on the proposal.
func (c *Contract) HasVoted(env *Env, proposalID uint64, voter string) (bool, error) {
	return env.Store.Has(GetVotedKey(proposalID, voter))
}

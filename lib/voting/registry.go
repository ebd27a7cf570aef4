package voting

import (
	"math"
	"strconv"

	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/errors"
)

// Initialize stores the administrator. It can be called only once for the
// lifetime of the storage.
func (c *Contract) Initialize(env *Env, admin string) error {
	if len(admin) < 1 {
		return errors.BadArgument.Clone().SetData("admin", admin)
	}

	exists, err := env.Store.Has(KeyAdmin)
	if err != nil {
		return err
	} else if exists {
		return errors.AlreadyInitialized
	}

	if err = c.put(env, KeyAdmin, admin); err != nil {
		return err
	}

	// the counter is already there in the ungated mode when proposals were
	// created before initializing.
	if exists, err = env.Store.Has(KeyProposalCount); err != nil {
		return err
	} else if !exists {
		if err = c.put(env, KeyProposalCount, uint64(0)); err != nil {
			return err
		}
	}

	env.emit(
		observer.NewEvent(observer.ResourceAdmin, observer.ConditionAll, ""),
		observer.NewEvent(observer.ResourceProposalCount, observer.ConditionAll, ""),
	)
	c.log.Info("initialized", "admin", admin)

	return nil
}

func (c *Contract) GetProposalCount(env *Env) (count uint64, err error) {
	if err = env.Store.Get(KeyProposalCount, &count); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return 0, nil
		}
		return
	}

	return
}

// CreateProposal increments the proposal counter and stores the new active
// proposal under the new counter value.
func (c *Contract) CreateProposal(env *Env, title, description string) (uint64, error) {
	if err := c.requireGovernance(env); err != nil {
		return 0, err
	}

	count, err := c.GetProposalCount(env)
	if err != nil {
		return 0, err
	} else if count == math.MaxUint64 {
		return 0, errors.ProposalCountOverflow.Clone().SetData("count", count)
	}

	proposal := NewProposal(count+1, title, description)
	if err = c.put(env, GetProposalKey(proposal.ID), proposal); err != nil {
		return 0, err
	}
	if err = c.put(env, KeyProposalCount, proposal.ID); err != nil {
		return 0, err
	}

	env.emit(
		observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, ""),
		observer.NewEvent(observer.ResourceProposalCount, observer.ConditionAll, ""),
	)
	c.log.Info("created proposal", "id", proposal.ID)

	return proposal.ID, nil
}

// ViewProposal returns `NotFoundProposal()` when the proposal does not exist.
func (c *Contract) ViewProposal(env *Env, id uint64) (Proposal, error) {
	var proposal Proposal
	if err := env.Store.Get(GetProposalKey(id), &proposal); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return NotFoundProposal(), nil
		}
		return Proposal{}, err
	}

	return proposal, nil
}

func (c *Contract) CloseProposal(env *Env, id uint64) error {
	if err := c.requireGovernance(env); err != nil {
		return err
	}

	proposal, err := c.ViewProposal(env, id)
	if err != nil {
		return err
	}

	if proposal.IsNotFound() {
		return errors.InvalidProposal
	}

	if !proposal.IsActive {
		if c.Config.ClosePolicy == ClosePolicyIgnore {
			c.log.Debug("proposal already closed", "id", id)
			return nil
		}
		return errors.ProposalClosed
	}

	proposal.IsActive = false
	if err = c.put(env, GetProposalKey(id), proposal); err != nil {
		return err
	}

	env.emit(
		observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, ""),
		observer.NewEvent(observer.ResourceProposal, observer.ConditionID, strconv.FormatUint(id, 10)),
	)
	c.log.Info("closed proposal", "id", id)

	return nil
}

package voting

import (
	"boscoin.io/votebook/lib/errors"
)

// requireAdmin checks the caller is authorized as the stored administrator.
func (c *Contract) requireAdmin(env *Env) error {
	admin, err := c.GetAdmin(env)
	if err != nil {
		return err
	}

	if err := env.Auth.RequireAuth(admin); err != nil {
		c.log.Debug("caller is not administrator", "admin", admin, "error", err)
		return err
	}

	return nil
}

// requireGovernance runs `requireAdmin` only in the gated mode.
func (c *Contract) requireGovernance(env *Env) error {
	if !c.Config.Gated {
		return nil
	}

	return c.requireAdmin(env)
}

func (c *Contract) GetAdmin(env *Env) (admin string, err error) {
	if err = env.Store.Get(KeyAdmin, &admin); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.NotInitialized
		}
		return
	}

	return
}

package voting

import (
	"fmt"

	logging "github.com/inconshreveable/log15"
)

type ClosePolicy string

const (
	// ClosePolicyReject fails with `errors.ProposalClosed` when the
	// proposal was already closed.
	ClosePolicyReject ClosePolicy = "reject"
	// ClosePolicyIgnore does nothing when the proposal was already closed.
	ClosePolicyIgnore ClosePolicy = "ignore"
)

func ParseClosePolicy(s string) (ClosePolicy, error) {
	switch p := ClosePolicy(s); p {
	case ClosePolicyReject, ClosePolicyIgnore:
		return p, nil
	default:
		return "", fmt.Errorf("unknown close policy: %q", s)
	}
}

const (
	DefaultTTLThreshold uint32 = 5000
	DefaultTTLExtendTo  uint32 = 5000
)

type Config struct {
	// Gated requires the administrator to authorize creating and closing
	// proposals.
	Gated       bool
	ClosePolicy ClosePolicy

	TTLThreshold uint32
	TTLExtendTo  uint32
}

func NewConfig() Config {
	return Config{
		Gated:        true,
		ClosePolicy:  ClosePolicyReject,
		TTLThreshold: DefaultTTLThreshold,
		TTLExtendTo:  DefaultTTLExtendTo,
	}
}

// Contract is the voting state transition engine. It keeps no state between
// invocations; everything is read from and written to `Env.Store`.
type Contract struct {
	Config Config

	log logging.Logger
}

func NewContract(config Config) *Contract {
	return &Contract{
		Config: config,
		log:    log.New(logging.Ctx{"gated": config.Gated}),
	}
}

func (c *Contract) SetLogger(logger logging.Logger) {
	c.log = logger
}

// put writes `v` and extends the lifetime of `key`.
func (c *Contract) put(env *Env, key string, v interface{}) error {
	if err := env.Store.Put(key, v); err != nil {
		return err
	}

	return env.Store.ExtendTTL(key, c.Config.TTLThreshold, c.Config.TTLExtendTo)
}

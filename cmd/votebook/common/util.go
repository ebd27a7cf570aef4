package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ulule/limiter"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
)

func errorString(err error) string {
	if e, ok := err.(*errors.Error); ok {
		return e.Message
	}
	return err.Error()
}

// PrintFlagsError issues a message on Stderr then exits with an error code.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n\n", errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// ParseFlagRateLimit parses the rate limit flags; "<limit>-<period>" sets
// the default rate and "<ip>=<limit>-<period>" sets the rate of the ip
// address. The last default wins.
func ParseFlagRateLimit(l ListFlags, defaultRate limiter.Rate) (rule common.RateLimitRule, err error) {
	if len(l) < 1 {
		rule = common.NewRateLimitRule(defaultRate)
		return
	}

	var givenRate limiter.Rate
	byIPAddress := map[string]limiter.Rate{}
	for _, s := range l {
		var ip, r string
		if i := strings.Index(s, "="); i < 0 {
			r = s
		} else {
			ip, r = s[:i], s[i+1:]
			if len(ip) < 1 {
				err = fmt.Errorf("empty ip address in %q", s)
				return
			}
		}

		var rate limiter.Rate
		if rate, err = limiter.NewRateFromFormatted(strings.ToUpper(r)); err != nil {
			return
		}

		if len(ip) > 0 {
			byIPAddress[ip] = rate
		} else {
			givenRate = rate
		}
	}

	if givenRate.Period == 0 {
		givenRate = defaultRate
	}

	rule = common.NewRateLimitRule(givenRate)
	rule.ByIPAddress = byIPAddress

	return
}

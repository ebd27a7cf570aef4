package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/client"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/contract/payload"
)

var (
	invokeCmd *cobra.Command

	flagInvokeEndpoint  string = common.GetENVValue("VOTEBOOK_ENDPOINT", fmt.Sprintf("http://127.0.0.1:%d", common.DefaultPort))
	flagInvokeNetworkID string = common.GetENVValue("VOTEBOOK_NETWORK_ID", "")
	flagInvokeFormat    string = "default"
	flagInvokeNoRetry   bool
	flagSecretSeeds     cmdcommon.ListFlags
)

type invokeResult struct {
	Hash           string      `json:"hash" yaml:"hash"`
	Method         string      `json:"method" yaml:"method"`
	Value          interface{} `json:"value" yaml:"value"`
	LedgerSequence uint64      `json:"ledger_sequence" yaml:"ledger_sequence"`
}

func defaultInvokeEncode(v interface{}, w io.Writer) error {
	r := v.(invokeResult)
	if _, err := fmt.Fprintf(w, "%s %s ledger=%d\n", r.Hash, r.Method, r.LedgerSequence); err != nil {
		return err
	}
	if r.Value == nil {
		return nil
	}
	return cmdcommon.DefaultEncodes["yaml"](r.Value, w)
}

var invokeEncoders = map[string]cmdcommon.Encode{
	"default":    defaultInvokeEncode,
	"json":       cmdcommon.DefaultEncodes["json"],
	"prettyjson": cmdcommon.DefaultEncodes["prettyjson"],
	"yaml":       cmdcommon.DefaultEncodes["yaml"],
}

func init() {
	invokeCmd = &cobra.Command{
		Use:   "invoke <method> [args...]",
		Short: "Sign and submit the invocation of the voting contract",
		Long: fmt.Sprintf(`Sign and submit the invocation of the voting contract.

methods:
  %s <admin address>
  %s [title] [description]
  %s <proposal id>
  %s <proposal id> <yes|no> <voter address>
  %s <proposal id>
  %s
  %s`,
			execfunc.MethodInitialize,
			execfunc.MethodCreateProposal,
			execfunc.MethodCloseProposal,
			execfunc.MethodCastVote,
			execfunc.MethodViewProposal,
			execfunc.MethodGetProposalCount,
			execfunc.MethodGetAdmin,
		),
		Args: cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			invocation, err := makeInvocation(args[0], args[1:])
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			retry := client.DefaultRetrySetting
			if flagInvokeNoRetry {
				retry = nil
			}

			cl, err := client.NewClientWithRetry(flagInvokeEndpoint, retry)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--endpoint", err)
			}

			result, err := cl.SubmitInvocation(invocation)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %s\n", err)
				os.Exit(1)
			}

			printed, err := toInvokeResult(result)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %s\n", err)
				os.Exit(1)
			}

			if err := invokeEncoders[flagInvokeFormat](printed, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "error: %s\n", err)
				os.Exit(1)
			}
		},
	}

	invokeCmd.Flags().StringVar(&flagInvokeEndpoint, "endpoint", flagInvokeEndpoint, "endpoint of votebook node")
	invokeCmd.Flags().StringVar(&flagInvokeNetworkID, "network-id", flagInvokeNetworkID, "network id")
	invokeCmd.Flags().Var(&flagSecretSeeds, "secret-seed", "secret seed of the signer; can be given multiple times")
	invokeCmd.Flags().StringVar(&flagInvokeFormat, "format", flagInvokeFormat, "output format, {default, json, prettyjson, yaml}")
	invokeCmd.Flags().BoolVar(&flagInvokeNoRetry, "no-retry", flagInvokeNoRetry, "do not retry the failed request")

	rootCmd.AddCommand(invokeCmd)
}

// makeInvocation builds the invocation signed by every `--secret-seed`.
func makeInvocation(method string, args []string) (invocation payload.Invocation, err error) {
	if len(flagInvokeNetworkID) < 1 {
		err = errors.New("--network-id must be given")
		return
	}
	if _, found := invokeEncoders[flagInvokeFormat]; !found {
		err = fmt.Errorf("unknown --format: %q", flagInvokeFormat)
		return
	}

	invocation = payload.NewInvocation(payload.NewExecCode(execfunc.VotingAddress, method, args...))
	for _, seed := range flagSecretSeeds {
		var kp keypair.KP
		if kp, err = keypair.Parse(seed); err != nil {
			err = fmt.Errorf("invalid --secret-seed: %v", err)
			return
		}
		if _, ok := kp.(*keypair.Full); !ok {
			err = fmt.Errorf("--secret-seed must be the secret seed, not the address: %q", seed)
			return
		}
		invocation.Sign(kp, []byte(flagInvokeNetworkID))
	}

	return
}

func toInvokeResult(result client.InvocationResult) (r invokeResult, err error) {
	r = invokeResult{
		Hash:           result.Hash,
		Method:         result.Method,
		LedgerSequence: result.LedgerSequence,
	}

	if len(result.Value) > 0 {
		err = json.Unmarshal(result.Value, &r.Value)
	}

	return
}

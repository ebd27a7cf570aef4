package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"

	cmdcommon "boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/metrics"
	"boscoin.io/votebook/lib/network"
	"boscoin.io/votebook/lib/node/runner"
	"boscoin.io/votebook/lib/storage"
	"boscoin.io/votebook/lib/voting"
)

const (
	defaultNetwork  string      = "http"
	defaultHost     string      = "0.0.0.0"
	defaultLogLevel logging.Lvl = logging.LvlInfo
)

var (
	flagNetworkID  string = common.GetENVValue("VOTEBOOK_NETWORK_ID", "")
	flagNodeName   string = common.GetENVValue("VOTEBOOK_NODE_NAME", "votebook")
	flagLogLevel   string = common.GetENVValue("VOTEBOOK_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput  string = common.GetENVValue("VOTEBOOK_LOG_OUTPUT", "")
	flagVerbose    bool   = common.GetENVValue("VOTEBOOK_VERBOSE", "0") == "1"
	flagDebugPProf bool   = common.GetENVValue("VOTEBOOK_DEBUG_PPROF", "0") == "1"
	flagBindURL    string = common.GetENVValue(
		"VOTEBOOK_BIND",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, common.DefaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = common.GetENVValue("VOTEBOOK_TLS_CERT", "votebook.crt")
	flagTLSKeyFile          string = common.GetENVValue("VOTEBOOK_TLS_KEY", "votebook.key")

	flagGated        string = common.GetENVValue("VOTEBOOK_GATED", "true")
	flagClosePolicy  string = common.GetENVValue("VOTEBOOK_CLOSE_POLICY", string(voting.ClosePolicyReject))
	flagTTLThreshold string = common.GetENVValue("VOTEBOOK_TTL_THRESHOLD", strconv.FormatUint(uint64(voting.DefaultTTLThreshold), 10))
	flagTTLExtendTo  string = common.GetENVValue("VOTEBOOK_TTL_EXTEND_TO", strconv.FormatUint(uint64(voting.DefaultTTLExtendTo), 10))

	flagRateLimitAPI      cmdcommon.ListFlags
	flagHTTPCacheAdapter  string = common.GetENVValue("VOTEBOOK_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize string = common.GetENVValue("VOTEBOOK_HTTP_CACHE_POOL_SIZE", strconv.Itoa(common.HTTPCachePoolSize))
	flagHTTPCacheExpire   string = common.GetENVValue("VOTEBOOK_HTTP_CACHE_EXPIRE", common.HTTPCacheExpire.String())
	flagHTTPCacheRedis    cmdcommon.ListFlags
)

var (
	nodeCmd *cobra.Command

	bindEndpoint  *common.Endpoint
	storageConfig *storage.Config
	votingConfig  voting.Config
	conf          common.Config
	logLevel      logging.Lvl
	log           logging.Logger = logging.New("module", "main")
)

func init() {
	var err error

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run votebook node",
		Run: func(c *cobra.Command, args []string) {
			if err := parseFlagsNode(); err != nil {
				cmdcommon.PrintError(c, err)
			}

			runNode()
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("VOTEBOOK_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagNodeName, "node-name", flagNodeName, "name of this node in the logs")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().BoolVar(&flagDebugPProf, "debug-pprof", flagDebugPProf, "serve pprof under /debug/pprof")
	nodeCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "bind address")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri, {memory://, file:///<path>}")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file, used for https")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file, used for https")
	nodeCmd.Flags().StringVar(&flagGated, "gated", flagGated, "administrator must authorize creating and closing proposals")
	nodeCmd.Flags().StringVar(&flagClosePolicy, "close-policy", flagClosePolicy, "closing the closed proposal, {reject, ignore}")
	nodeCmd.Flags().StringVar(&flagTTLThreshold, "ttl-threshold", flagTTLThreshold, "ledgers left before the record lifetime is extended")
	nodeCmd.Flags().StringVar(&flagTTLExtendTo, "ttl-extend-to", flagTTLExtendTo, "ledgers the record lifetime is extended to")
	nodeCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", "rate limit for api: [<ip>=]<limit>-<period>, ex) '10-S' '3.3.3.3=1000-M'")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter, {'', mem, redis}")
	nodeCmd.Flags().StringVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "number of pages of mem cache")
	nodeCmd.Flags().StringVar(&flagHTTPCacheExpire, "http-cache-expire", flagHTTPCacheExpire, "expiration of cached pages")
	nodeCmd.Flags().Var(&flagHTTPCacheRedis, "http-cache-redis", "redis address of redis cache: <name>=<host:port>")

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagRedisAddrs(l cmdcommon.ListFlags) (map[string]string, error) {
	addrs := map[string]string{}
	for i, s := range l {
		name, addr := fmt.Sprintf("redis%d", i), s
		if n := strings.Index(s, "="); n >= 0 {
			name, addr = s[:n], s[n+1:]
		}
		if len(name) < 1 || len(addr) < 1 {
			return nil, fmt.Errorf("invalid redis address: %q", s)
		}
		addrs[name] = addr
	}

	return addrs, nil
}

func parseFlagUint32(flagName, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid '%s': %q", flagName, s)
	}
	return uint32(v), nil
}

func parseFlagsNode() (err error) {
	if len(flagNetworkID) < 1 {
		return errors.New("--network-id must be given")
	}

	if bindEndpoint, err = common.ParseEndpoint(flagBindURL); err != nil {
		return fmt.Errorf("invalid '--bind': %v", err)
	}

	queries := bindEndpoint.Query()
	if bindEndpoint.Scheme == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("invalid '--tls-cert': %v", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			return fmt.Errorf("invalid '--tls-key': %v", err)
		}
		queries.Set("TLSCertFile", flagTLSCertFile)
		queries.Set("TLSKeyFile", flagTLSKeyFile)
	}
	if len(queries.Get("IdleTimeout")) < 1 {
		queries.Set("IdleTimeout", "3s")
	}
	bindEndpoint.RawQuery = queries.Encode()

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		return fmt.Errorf("invalid '--storage': %v", err)
	}

	votingConfig = voting.NewConfig()
	if votingConfig.Gated, err = common.ParseBoolQueryString(flagGated); err != nil {
		return fmt.Errorf("invalid '--gated': %q", flagGated)
	}
	if votingConfig.ClosePolicy, err = voting.ParseClosePolicy(flagClosePolicy); err != nil {
		return fmt.Errorf("invalid '--close-policy': %v", err)
	}
	if votingConfig.TTLThreshold, err = parseFlagUint32("--ttl-threshold", flagTTLThreshold); err != nil {
		return
	}
	if votingConfig.TTLExtendTo, err = parseFlagUint32("--ttl-extend-to", flagTTLExtendTo); err != nil {
		return
	}

	conf = common.NewConfig([]byte(flagNetworkID))
	if conf.RateLimitRuleAPI, err = cmdcommon.ParseFlagRateLimit(flagRateLimitAPI, common.RateLimitAPI); err != nil {
		return fmt.Errorf("invalid '--rate-limit-api': %v", err)
	}

	switch flagHTTPCacheAdapter {
	case common.HTTPCacheNopAdapterName, common.HTTPCacheMemoryAdapterName, common.HTTPCacheRedisAdapterName:
		conf.HTTPCacheAdapter = flagHTTPCacheAdapter
	default:
		return fmt.Errorf("invalid '--http-cache-adapter': %q", flagHTTPCacheAdapter)
	}
	if conf.HTTPCachePoolSize, err = strconv.Atoi(flagHTTPCachePoolSize); err != nil || conf.HTTPCachePoolSize < 1 {
		return fmt.Errorf("invalid '--http-cache-pool-size': %q", flagHTTPCachePoolSize)
	}
	var expire time.Duration
	if expire, err = time.ParseDuration(flagHTTPCacheExpire); err != nil {
		return fmt.Errorf("invalid '--http-cache-expire': %v", err)
	}
	conf.HTTPCacheExpire = expire
	if conf.HTTPCacheRedisAddrs, err = parseFlagRedisAddrs(flagHTTPCacheRedis); err != nil {
		return fmt.Errorf("invalid '--http-cache-redis': %v", err)
	}
	if conf.HTTPCacheAdapter == common.HTTPCacheRedisAdapterName && len(conf.HTTPCacheRedisAddrs) < 1 {
		return errors.New("'--http-cache-redis' must be given for redis cache")
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		return fmt.Errorf("invalid '--log-level': %v", err)
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = common.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, common.JsonFormatEx(false, true)); err != nil {
			return fmt.Errorf("invalid '--log-output': %v", err)
		}
	}

	common.SetLogging(log, logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	voting.SetLogging(logLevel, logHandler)

	runner.DebugPProf = flagDebugPProf
	network.VerboseLogs = flagVerbose

	log.Info("Starting votebook")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tbind", bindEndpoint.String())
	parsedFlags = append(parsedFlags, "\n\tstorage", storageConfig.String())
	parsedFlags = append(parsedFlags, "\n\tgated", votingConfig.Gated)
	parsedFlags = append(parsedFlags, "\n\tclose-policy", votingConfig.ClosePolicy)
	parsedFlags = append(parsedFlags, "\n\tttl", fmt.Sprintf("threshold=%d extend-to=%d", votingConfig.TTLThreshold, votingConfig.TTLExtendTo))
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", conf.RateLimitRuleAPI)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", conf.HTTPCacheAdapter)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}

	return nil
}

func runNode() {
	networkConfig, err := network.NewHTTP2NetworkConfigFromEndpoint(flagNodeName, bindEndpoint)
	if err != nil {
		log.Crit("failed to make network config", "error", err)
		os.Exit(1)
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	// Execution group.
	var g run.Group
	{
		nr, err := runner.NewNodeRunner(network.NewHTTP2Network(networkConfig), st, votingConfig, conf)
		if err != nil {
			log.Crit("failed to make node runner", "error", err)
			os.Exit(1)
		}

		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("node stopped", "reason", err)
	}
}

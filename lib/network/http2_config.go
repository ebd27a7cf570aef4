package network

import (
	"errors"
	"strings"
	"time"

	"boscoin.io/votebook/lib/common"
)

type HTTP2NetworkConfig struct {
	NodeName string
	Endpoint *common.Endpoint
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

func parseTimeoutQuery(endpoint *common.Endpoint, key string) (d time.Duration, err error) {
	if d, err = time.ParseDuration(common.GetUrlQuery(endpoint.Query(), key, "0s")); err != nil {
		return
	}
	if d < 0 {
		err = errors.New("invalid '" + key + "'")
	}

	return
}

// NewHTTP2NetworkConfigFromEndpoint reads the server settings from the
// query of `endpoint`, like
// `https://0.0.0.0:12480?TLSCertFile=node.crt&TLSKeyFile=node.key&ReadTimeout=5s`.
func NewHTTP2NetworkConfigFromEndpoint(nodeName string, endpoint *common.Endpoint) (config *HTTP2NetworkConfig, err error) {
	query := endpoint.Query()

	var ReadTimeout, ReadHeaderTimeout, WriteTimeout, IdleTimeout time.Duration
	if ReadTimeout, err = parseTimeoutQuery(endpoint, "ReadTimeout"); err != nil {
		return
	}
	if ReadHeaderTimeout, err = parseTimeoutQuery(endpoint, "ReadHeaderTimeout"); err != nil {
		return
	}
	if WriteTimeout, err = parseTimeoutQuery(endpoint, "WriteTimeout"); err != nil {
		return
	}
	if IdleTimeout, err = parseTimeoutQuery(endpoint, "IdleTimeout"); err != nil {
		return
	}

	TLSCertFile := query.Get("TLSCertFile")
	TLSKeyFile := query.Get("TLSKeyFile")

	if strings.ToLower(endpoint.Scheme) == "https" && (len(TLSCertFile) < 1 || len(TLSKeyFile) < 1) {
		err = errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
		return
	}

	config = &HTTP2NetworkConfig{
		NodeName:          nodeName,
		Endpoint:          endpoint,
		Addr:              endpoint.Host,
		ReadTimeout:       ReadTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		TLSCertFile:       TLSCertFile,
		TLSKeyFile:        TLSKeyFile,
	}

	return
}

func (config HTTP2NetworkConfig) IsHTTPS() bool {
	return len(config.TLSCertFile) > 0 && len(config.TLSKeyFile) > 0
}

func (config HTTP2NetworkConfig) String() string {
	return string(common.MustMarshalJSON(config))
}

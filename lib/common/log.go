package common

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/votebook/lib/errors"
)

var (
	DefaultLogLevel   logging.Lvl     = logging.LvlInfo
	DefaultLogHandler logging.Handler = logging.StreamHandler(os.Stdout, logging.TerminalFormat())
)

// SetLogging set the logger
func SetLogging(logger logging.Logger, level logging.Lvl, handler logging.Handler) {
	logger.SetHandler(logging.LvlFilterHandler(level, handler))
}

// NopLogger returns a logger which drops every record.
func NopLogger() logging.Logger {
	logger := logging.New()
	logger.SetHandler(logging.DiscardHandler())
	return logger
}

const logErrorKey = "LOG15_ERROR"

// logValue converts the context value of the record to the json friendly
// one; the nil pointer is "nil".
func logValue(value interface{}) (result interface{}) {
	if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
		return "nil"
	}

	switch v := value.(type) {
	case json.Marshaler, *errors.Error:
		return v
	case time.Time:
		return FormatISO8601(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	return value
}

// JsonFormatEx formats the record as one json object; with `lineSeparated`
// each record ends with newline.
func JsonFormatEx(pretty, lineSeparated bool) logging.Format {
	marshal := func(v interface{}) ([]byte, error) {
		if pretty {
			return json.MarshalIndent(v, "", "    ")
		}
		return json.Marshal(v)
	}

	return logging.FormatFunc(func(r *logging.Record) []byte {
		props := map[string]interface{}{
			r.KeyNames.Time: FormatISO8601(r.Time),
			r.KeyNames.Lvl:  r.Lvl.String(),
			r.KeyNames.Msg:  r.Msg,
		}

		for i := 0; i+1 < len(r.Ctx); i += 2 {
			k, ok := r.Ctx[i].(string)
			if !ok {
				props[logErrorKey] = fmt.Sprintf("%+v is not a string key", r.Ctx[i])
				continue
			}
			props[k] = logValue(r.Ctx[i+1])
		}

		b, err := marshal(props)
		if err != nil {
			b, _ = marshal(map[string]string{logErrorKey: err.Error()})
		}

		if lineSeparated {
			b = append(b, '\n')
		}

		return b
	})
}

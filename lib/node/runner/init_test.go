package runner

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/test"
)

func init() {
	common.SetLogging(log, logging.LvlDebug, test.LogHandler())
}

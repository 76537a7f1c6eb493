package foliodb

import (
	"database/sql"
	"errors"

	"github.com/pingcap/log"
)

// Database modes. LOCAL is a SQLite file under the data path, EMBEDDED an
// in-process memory database that is gone after a restart, REMOTE a hosted
// libsql database.
const (
	LOCAL    = "local"
	EMBEDDED = "embedded"
	REMOTE   = "remote"
)

// this meant be use with defer so it can log error even after function end
func TxnRollback(tx *sql.Tx) {
	err := tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error(err.Error())
	}
}

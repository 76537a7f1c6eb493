//nolint:revive // exported
package dbtime

import "time"

func DBNow() time.Time {
	return DBTime(time.Now())
}

func DBTime(t time.Time) time.Time {
	return t.UTC()
}

// Unix is the representation stored in created_at and updated_at columns.
func Unix() int64 {
	return DBNow().Unix()
}

func FromUnix(sec int64) time.Time {
	return DBTime(time.Unix(sec, 0))
}

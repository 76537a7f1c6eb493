package txutil

import (
	"context"
	"database/sql"
	"fmt"
)

// SyncTx tracks changes made inside a transaction and publishes them grouped by
// topic once the transaction has committed. Nothing is published on failure.
type SyncTx[T any, Topic comparable] struct {
	tx        *sql.Tx
	extractor func(T) Topic
	tracked   []T
}

func NewSyncTx[T any, Topic comparable](tx *sql.Tx, extractor func(T) Topic) *SyncTx[T, Topic] {
	return &SyncTx[T, Topic]{
		tx:        tx,
		extractor: extractor,
	}
}

func (s *SyncTx[T, Topic]) Tx() *sql.Tx {
	return s.tx
}

func (s *SyncTx[T, Topic]) Track(items ...T) {
	s.tracked = append(s.tracked, items...)
}

func (s *SyncTx[T, Topic]) Tracked() int {
	return len(s.tracked)
}

// CommitAndPublish commits the transaction, then calls publish once per topic in
// first-seen order.
func (s *SyncTx[T, Topic]) CommitAndPublish(ctx context.Context, publish func(Topic, []T)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	if len(s.tracked) == 0 || publish == nil {
		return nil
	}

	grouped := make(map[Topic][]T)
	var order []Topic
	for _, item := range s.tracked {
		topic := s.extractor(item)
		if _, ok := grouped[topic]; !ok {
			order = append(order, topic)
		}
		grouped[topic] = append(grouped[topic], item)
	}
	for _, topic := range order {
		publish(topic, grouped[topic])
	}
	return nil
}

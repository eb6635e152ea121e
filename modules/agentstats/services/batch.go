package services

import "github.com/iota-uz/agent-etl/modules/agentstats/domain"

// Batch accumulates mapped records across one input file. Collections
// keep first-seen order; users are deduplicated by user_id with the
// first-seen name winning. Duplicate rows for one user still emit their
// daily records — the database upsert decides which one sticks.
type Batch struct {
	Users       []domain.User
	Performance []domain.PerformanceRecord
	Retention   []domain.RetentionRecord
	Nps         []domain.NpsRecord

	seen map[int64]struct{}
}

func NewBatch() *Batch {
	return &Batch{seen: make(map[int64]struct{})}
}

func (b *Batch) Add(row MappedRow) {
	if _, dup := b.seen[row.User.UserID]; !dup {
		b.seen[row.User.UserID] = struct{}{}
		b.Users = append(b.Users, row.User)
	}
	b.Performance = append(b.Performance, row.Performance)
	b.Retention = append(b.Retention, row.Retention)
	b.Nps = append(b.Nps, row.Nps)
}

func (b *Batch) Empty() bool {
	return len(b.Users) == 0
}

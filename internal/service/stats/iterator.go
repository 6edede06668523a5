package stats

import (
	"context"
	"fmt"

	"github.com/park285/wordle-backend/internal/domain"
)

// UserIterator walks every shard in ascending order, yielding one bounded
// user batch per shard. Iterators are single-use: end-of-stream is signalled
// explicitly through ok=false and a fresh ListUsers call restarts the scan.
type UserIterator struct {
	svc      *Service
	pageSize int
	next     int
}

// ListUsers starts a full scan. pageSize is clamped to (0, 100].
func (s *Service) ListUsers(pageSize int) *UserIterator {
	if pageSize <= 0 || pageSize > maxUserPage {
		pageSize = maxUserPage
	}
	return &UserIterator{svc: s, pageSize: pageSize}
}

// Next returns the next shard's batch. ok is false once every shard has been
// visited; the batch is only valid when ok is true and err is nil.
func (it *UserIterator) Next(ctx context.Context) (domain.ShardUsers, bool, error) {
	if it.next >= it.svc.repo.ShardCount() {
		return domain.ShardUsers{}, false, nil
	}
	shardID := it.next
	it.next++
	users, err := it.svc.repo.ListUsers(ctx, shardID, it.pageSize)
	if err != nil {
		return domain.ShardUsers{}, false, fmt.Errorf("list users shard %d: %w", shardID, err)
	}
	return domain.ShardUsers{Shard: shardID, Users: users}, true, nil
}

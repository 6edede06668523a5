// Package shard routes users to relational partitions. The mapping must be
// pure and stable: a user's history lives on exactly one shard forever.
package shard

import (
	"math/big"

	"github.com/google/uuid"

	"github.com/park285/wordle-backend/pkg/gamedto"
)

// UserShard maps a UUID string to a shard index in [0, shardCount). The UUID
// bytes are interpreted as a big-endian 128-bit integer and reduced mod
// shardCount, so the result matches any other client using the same scheme.
func UserShard(userID string, shardCount int) (int, error) {
	if shardCount < 1 {
		return 0, gamedto.InvalidArgument("shard count must be positive")
	}
	u, err := uuid.Parse(userID)
	if err != nil {
		return 0, gamedto.InvalidArgument("user_id must be a well-formed UUID")
	}
	n := new(big.Int).SetBytes(u[:])
	return int(n.Mod(n, big.NewInt(int64(shardCount))).Int64()), nil
}

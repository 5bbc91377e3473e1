package redis

import (
	"context"

	"github.com/tidewater-labs/newswire/internal/db"
)

// IndexExists probes index existence via FT.INFO; "unknown index name" means
// absent. The index lifecycle itself belongs to the ingest pipeline — this
// read path only verifies the pre-built index is reachable.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	err := s.do(ctx, cmd).Error()
	if err == nil {
		return true, nil
	}
	if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
		return false, nil
	}
	return false, &db.Error{Op: db.OpIndexInfo, Err: err}
}

package destinations

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/giquina/armora-sub001/internal/domain/booking"
)

// ValkeyStore keeps each owner's recent destinations in a Valkey list.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	limit  int
	ttl    time.Duration
}

// NewValkeyStore constructs a store backed by Valkey. Lists expire after ttl
// of inactivity when ttl is positive.
func NewValkeyStore(client valkey.Client, prefix string, limit int, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "armora"
	}
	if limit <= 0 {
		limit = booking.DefaultRecentLimit
	}
	return &ValkeyStore{client: client, prefix: prefix, limit: limit, ttl: ttl}
}

// Load implements booking.DestinationStore.
func (s *ValkeyStore) Load(ctx context.Context, owner string) ([]string, error) {
	cmd := s.client.B().Lrange().Key(s.listKey(owner)).Start(0).Stop(int64(s.limit - 1)).Build()
	items, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

// Save implements booking.DestinationStore. The list is replaced wholesale
// since the configurator already holds the ordered, deduplicated view.
func (s *ValkeyStore) Save(ctx context.Context, owner string, items []string) error {
	if owner == "" {
		return nil
	}
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	key := s.listKey(owner)
	cmds := valkey.Commands{
		s.client.B().Multi().Build(),
		s.client.B().Del().Key(key).Build(),
	}
	if len(items) > 0 {
		cmds = append(cmds, s.client.B().Rpush().Key(key).Element(items...).Build())
		if s.ttl > 0 {
			ttl := s.ttl
			if ttl < time.Second {
				ttl = time.Second
			}
			cmds = append(cmds, s.client.B().Expire().Key(key).Seconds(int64(ttl/time.Second)).Build())
		}
	}
	cmds = append(cmds, s.client.B().Exec().Build())
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return fmt.Errorf("save recent destinations: %w", err)
		}
	}
	return nil
}

func (s *ValkeyStore) listKey(owner string) string {
	return fmt.Sprintf("%s:recent:%s", s.prefix, owner)
}

var _ booking.DestinationStore = (*ValkeyStore)(nil)

package scheduling

import (
	"context"
	"encoding/json"
	"fmt"

	"taskboard/internal/model"
)

// Reference rows are immutable within a scheduling run, so they sit behind
// a cache-aside Redis layer. The cache fails open: any Redis problem just
// falls through to the store.

func (s *Service) cachedTaskType(ctx context.Context, id int) (*model.TaskType, error) {
	key := fmt.Sprintf("ref:task_type:%d", id)
	if cached := cacheGet[model.TaskType](s, ctx, key); cached != nil {
		return cached, nil
	}
	t, err := s.refs.TaskType(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	cacheSet(s, ctx, key, t)
	return t, nil
}

func (s *Service) cachedPriorityLevel(ctx context.Context, id int) (*model.PriorityLevel, error) {
	key := fmt.Sprintf("ref:priority_level:%d", id)
	if cached := cacheGet[model.PriorityLevel](s, ctx, key); cached != nil {
		return cached, nil
	}
	p, err := s.refs.PriorityLevel(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	cacheSet(s, ctx, key, p)
	return p, nil
}

func (s *Service) cachedComplexityLevel(ctx context.Context, id int) (*model.ComplexityLevel, error) {
	key := fmt.Sprintf("ref:complexity_level:%d", id)
	if cached := cacheGet[model.ComplexityLevel](s, ctx, key); cached != nil {
		return cached, nil
	}
	c, err := s.refs.ComplexityLevel(ctx, id)
	if err != nil || c == nil {
		return c, err
	}
	cacheSet(s, ctx, key, c)
	return c, nil
}

func cacheGet[T any](s *Service, ctx context.Context, key string) *T {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return &v
}

func cacheSet(s *Service, ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.rdb.Set(ctx, key, data, s.cacheTTL)
}

package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"phonedir/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) TestGetSetExists() {
	s.Run("absent key", func() {
		ok, err := s.store.Exists(s.ctx, "phone:+79990000000")
		s.Require().NoError(err)
		s.False(ok)

		_, err = s.store.Get(s.ctx, "phone:+79990000000")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("set then get returns value verbatim", func() {
		s.Require().NoError(s.store.Set(s.ctx, "phone:+79991234567", "  Moscow, Tverskaya 1 "))

		ok, err := s.store.Exists(s.ctx, "phone:+79991234567")
		s.Require().NoError(err)
		s.True(ok)

		v, err := s.store.Get(s.ctx, "phone:+79991234567")
		s.Require().NoError(err)
		s.Equal("  Moscow, Tverskaya 1 ", v)
	})
}

func (s *InMemoryStoreSuite) TestSetIfAbsent() {
	set, err := s.store.SetIfAbsent(s.ctx, "k", "first")
	s.Require().NoError(err)
	s.True(set)

	set, err = s.store.SetIfAbsent(s.ctx, "k", "second")
	s.Require().NoError(err)
	s.False(set)

	v, err := s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal("first", v)
}

func (s *InMemoryStoreSuite) TestSetIfAbsentConcurrent() {
	const goroutines = 50
	var wg sync.WaitGroup
	var wins atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := s.store.SetIfAbsent(s.ctx, "k", "v"); err == nil && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load(), "exactly one SetIfAbsent should win")
}

func (s *InMemoryStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Set(s.ctx, "k", "v"))
	s.Require().NoError(s.store.Delete(s.ctx, "k"))

	ok, err := s.store.Exists(s.ctx, "k")
	s.Require().NoError(err)
	s.False(ok)
	s.Zero(s.store.Len())

	s.NoError(s.store.Delete(s.ctx, "k"), "deleting an absent key is not an error")
}

package services

import (
	"context"

	"github.com/hubinova/backend/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Stats counts every row, drafts included.
type Stats struct {
	Challenges  int64 `json:"challenges"`
	Solutions   int64 `json:"solutions"`
	Events      int64 `json:"events"`
	Users       int64 `json:"users"`
	Initiatives int64 `json:"initiatives"`
}

// Get runs the counts concurrently. Any failing count fails the whole result.
func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	var st Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.Challenges, err = countRows[models.Challenge](gctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		st.Solutions, err = countRows[models.Solution](gctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		st.Events, err = countRows[models.Event](gctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		st.Users, err = countRows[models.User](gctx, s.db)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	st.Initiatives = st.Challenges + st.Solutions
	return &st, nil
}

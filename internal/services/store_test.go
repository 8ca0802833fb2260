package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/apperr"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type StoreSuite struct {
	suite.Suite
	ctx        context.Context
	db         *gorm.DB
	challenges *ChallengeService
	solutions  *SolutionService
	statuses   *SolutionStatusService
	events     *EventService
	news       *NewsService
	geral      *GeralService
	stats      *StatsService
	owner      *models.User
	solver     *models.User
	admin      *models.User
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDB(s.T())
	s.challenges = NewChallengeService(s.db, nil)
	s.solutions = NewSolutionService(s.db, nil)
	s.statuses = NewSolutionStatusService(s.db)
	s.events = NewEventService(s.db)
	s.news = NewNewsService(s.db)
	s.geral = NewGeralService(s.db)
	s.stats = NewStatsService(s.db)
	s.owner = createUser(s.T(), s.db, "owner@example.com", models.RoleChallenger, "")
	s.solver = createUser(s.T(), s.db, "solver@example.com", models.RoleSolver, "")
	s.admin = createUser(s.T(), s.db, "admin@example.com", models.RoleAdmin, "")
}

func (s *StoreSuite) newChallenge(title string) *models.Challenge {
	c, err := s.challenges.Create(s.ctx, actorOf(s.owner), &CreateChallengeRequest{
		Title:       title,
		Description: "description of " + title,
		Axis:        "Saúde",
	})
	s.Require().NoError(err)
	return c
}

func (s *StoreSuite) TestCreateThenGetRoundTrip() {
	created, err := s.challenges.Create(s.ctx, actorOf(s.owner), &CreateChallengeRequest{
		Title:            "Water quality",
		Description:      "Monitor rivers",
		RelationshipType: "B2G",
		Deadline:         "2026-12-31",
		Attachments:      []string{"https://cdn/a.pdf", "https://cdn/b.pdf"},
	})
	s.Require().NoError(err)

	got, err := s.challenges.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Water quality", got.Title)
	s.Equal("Monitor rivers", got.Description)
	s.Equal("B2G", got.RelationshipType)
	s.Equal("2026-12-31", got.Deadline)
	s.Equal(models.StringList{"https://cdn/a.pdf", "https://cdn/b.pdf"}, got.Attachments)
	s.Equal(models.ChallengePending, got.Status)
	s.Require().NotNil(got.CreatedBy)
	s.Equal(s.owner.ID, *got.CreatedBy)
}

func (s *StoreSuite) TestCreateRequiresTitleAndDescription() {
	_, err := s.challenges.Create(s.ctx, actorOf(s.owner), &CreateChallengeRequest{Description: "no title"})
	s.True(apperr.Is(err, apperr.CodeValidation))
	s.Contains(err.Error(), "title is required")

	_, err = s.events.Create(s.ctx, &CreateEventRequest{})
	s.True(apperr.Is(err, apperr.CodeValidation))
}

func (s *StoreSuite) TestUpdatePreservesUnsentFields() {
	c := s.newChallenge("Original")

	updated, err := s.challenges.Update(s.ctx, c.ID, &UpdateChallengeRequest{Title: ptr("Renamed")})
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Title)
	s.Equal("description of Original", updated.Description)
	s.Equal("Saúde", updated.Axis)
	s.Equal(c.Status, updated.Status)
}

func (s *StoreSuite) TestUpdateEmptyStringOverwrites() {
	c := s.newChallenge("Axis cleared")

	updated, err := s.challenges.Update(s.ctx, c.ID, &UpdateChallengeRequest{Axis: ptr("")})
	s.Require().NoError(err)
	s.Equal("", updated.Axis)
	s.Equal("Axis cleared", updated.Title)

	updated, err = s.challenges.Update(s.ctx, c.ID, &UpdateChallengeRequest{ContactEmail: ptr("")})
	s.Require().NoError(err)
	s.Equal("", updated.ContactEmail)
}

func (s *StoreSuite) TestEmptyUpdateIsNoop() {
	ev, err := s.events.Create(s.ctx, &CreateEventRequest{Title: "Hackathon", Location: "Campo Grande"})
	s.Require().NoError(err)
	before, err := s.events.GetByID(s.ctx, ev.ID)
	s.Require().NoError(err)

	after, err := s.events.Update(s.ctx, ev.ID, &UpdateEventRequest{})
	s.Require().NoError(err)
	s.Equal(before.Title, after.Title)
	s.Equal(before.Location, after.Location)
	s.True(before.UpdatedAt.Equal(after.UpdatedAt))
}

func (s *StoreSuite) TestUpdateMissingIsNotFound() {
	_, err := s.events.Update(s.ctx, 9999, &UpdateEventRequest{Title: ptr("x")})
	s.True(apperr.Is(err, apperr.CodeNotFound))

	_, err = s.events.Update(s.ctx, 9999, &UpdateEventRequest{})
	s.True(apperr.Is(err, apperr.CodeNotFound))
}

func (s *StoreSuite) TestUpdateRejectsInvalidValues() {
	c := s.newChallenge("Dates")
	_, err := s.challenges.Update(s.ctx, c.ID, &UpdateChallengeRequest{Deadline: ptr("31/12/2026")})
	s.True(apperr.Is(err, apperr.CodeValidation))

	_, err = s.challenges.Update(s.ctx, c.ID, &UpdateChallengeRequest{Status: ptr("open")})
	s.True(apperr.Is(err, apperr.CodeValidation))
}

func (s *StoreSuite) TestDeleteThenGetIsNotFound() {
	ev, err := s.events.Create(s.ctx, &CreateEventRequest{Title: "Demo day"})
	s.Require().NoError(err)

	s.Require().NoError(s.events.Delete(s.ctx, ev.ID))
	_, err = s.events.GetByID(s.ctx, ev.ID)
	s.True(apperr.Is(err, apperr.CodeNotFound))
	s.True(apperr.Is(s.events.Delete(s.ctx, ev.ID), apperr.CodeNotFound))
}

func (s *StoreSuite) TestChallengeDeleteRemovesSolutions() {
	c := s.newChallenge("With solutions")
	sol, err := s.solutions.Create(s.ctx, actorOf(s.solver), &CreateSolutionRequest{
		Title: "Sensors", Description: "IoT sensors", ChallengeID: c.ID,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.challenges.Delete(s.ctx, c.ID))
	_, err = s.solutions.GetByID(s.ctx, sol.ID)
	s.True(apperr.Is(err, apperr.CodeNotFound))
}

func (s *StoreSuite) TestSolutionStatusDeleteConflictsWhenReferenced() {
	label, err := s.statuses.Create(s.ctx, &CreateSolutionStatusRequest{Name: "Em análise", Message: "Olá {nome}"})
	s.Require().NoError(err)
	c := s.newChallenge("Labelled")
	sol, err := s.solutions.Create(s.ctx, actorOf(s.solver), &CreateSolutionRequest{
		Title: "Drones", Description: "Aerial survey", ChallengeID: c.ID,
	})
	s.Require().NoError(err)
	_, err = s.solutions.ChangeStatus(s.ctx, sol.ID, &StatusChangeRequest{StatusID: &label.ID})
	s.Require().NoError(err)

	err = s.statuses.Delete(s.ctx, label.ID)
	s.True(apperr.Is(err, apperr.CodeConflict))

	s.Require().NoError(s.solutions.Delete(s.ctx, sol.ID))
	s.NoError(s.statuses.Delete(s.ctx, label.ID))
}

func (s *StoreSuite) TestSolutionStatusIDZeroClearsLabel() {
	label, err := s.statuses.Create(s.ctx, &CreateSolutionStatusRequest{Name: "Em avaliação"})
	s.Require().NoError(err)
	c := s.newChallenge("Clearable")
	sol, err := s.solutions.Create(s.ctx, actorOf(s.solver), &CreateSolutionRequest{
		Title: "Kiosks", Description: "Self-service", ChallengeID: c.ID,
	})
	s.Require().NoError(err)

	labelled, err := s.solutions.ChangeStatus(s.ctx, sol.ID, &StatusChangeRequest{StatusID: &label.ID})
	s.Require().NoError(err)
	s.Require().NotNil(labelled.StatusID)

	cleared, err := s.solutions.ChangeStatus(s.ctx, sol.ID, &StatusChangeRequest{StatusID: ptr(uint(0)), Notify: true})
	s.Require().NoError(err)
	s.Nil(cleared.StatusID)
	s.Equal(labelled.Status, cleared.Status)

	stored, err := s.solutions.GetByID(s.ctx, sol.ID)
	s.Require().NoError(err)
	s.Nil(stored.StatusID)
	s.NoError(s.statuses.Delete(s.ctx, label.ID))

	_, err = s.solutions.Update(s.ctx, sol.ID, &UpdateSolutionRequest{StatusID: ptr(uint(999))})
	s.True(apperr.Is(err, apperr.CodeNotFound))
}

func (s *StoreSuite) TestSolutionStatusNameIsUnique() {
	_, err := s.statuses.Create(s.ctx, &CreateSolutionStatusRequest{Name: "Aprovada"})
	s.Require().NoError(err)
	_, err = s.statuses.Create(s.ctx, &CreateSolutionStatusRequest{Name: "Aprovada"})
	s.True(apperr.Is(err, apperr.CodeConflict))
}

func (s *StoreSuite) TestGeralSingleton() {
	first, err := s.geral.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.DefaultContactPhone, first.ContactPhone)

	second, err := s.geral.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	updated, err := s.geral.Update(s.ctx, &UpdateGeralRequest{Address: ptr("Av. Afonso Pena, 1000")})
	s.Require().NoError(err)
	s.Equal(first.ID, updated.ID)
	s.Equal(models.DefaultContactPhone, updated.ContactPhone)
	s.Equal("Av. Afonso Pena, 1000", updated.Address)

	var rows int64
	s.Require().NoError(s.db.Model(&models.GeralSettings{}).Count(&rows).Error)
	s.Equal(int64(1), rows)
}

func (s *StoreSuite) TestStatsInitiatives() {
	var challenges []*models.Challenge
	for _, title := range []string{"A", "B", "C"} {
		challenges = append(challenges, s.newChallenge(title))
	}
	for i := 0; i < 2; i++ {
		_, err := s.solutions.Create(s.ctx, actorOf(s.solver), &CreateSolutionRequest{
			Title: "Idea", Description: "Details", ChallengeID: challenges[i].ID,
		})
		s.Require().NoError(err)
	}
	_, err := s.events.Create(s.ctx, &CreateEventRequest{Title: "Meetup"})
	s.Require().NoError(err)

	st, err := s.stats.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), st.Challenges)
	s.Equal(int64(2), st.Solutions)
	s.Equal(int64(1), st.Events)
	s.Equal(int64(3), st.Users)
	s.Equal(st.Challenges+st.Solutions, st.Initiatives)
}

func (s *StoreSuite) TestDisjointConcurrentPatchesBothPersist() {
	c := s.newChallenge("Concurrent")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = s.challenges.Update(s.ctx, c.ID, &UpdateChallengeRequest{Title: ptr("New title")})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = s.challenges.Update(s.ctx, c.ID, &UpdateChallengeRequest{Benefits: ptr("Lower costs")})
	}()
	wg.Wait()
	s.Require().NoError(errs[0])
	s.Require().NoError(errs[1])

	got, err := s.challenges.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("New title", got.Title)
	s.Equal("Lower costs", got.Benefits)
}

func (s *StoreSuite) TestNewsDefaultsAndOrder() {
	older := time.Now().Add(-48 * time.Hour)
	_, err := s.news.Create(s.ctx, actorOf(s.admin), &CreateNewsRequest{Title: "Old", PublishedAt: &older})
	s.Require().NoError(err)
	latest, err := s.news.Create(s.ctx, actorOf(s.admin), &CreateNewsRequest{Title: "Fresh"})
	s.Require().NoError(err)
	s.False(latest.PublishedAt.IsZero())
	s.Require().NotNil(latest.AuthorID)
	s.Equal(s.admin.ID, *latest.AuthorID)

	list, err := s.news.List(s.ctx, &NewsListRequest{})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Fresh", list[0].Title)
	s.Equal("Old", list[1].Title)
}

func (s *StoreSuite) TestContentTablesAreSeparate() {
	info := NewContentService(s.db, models.TableProgramInfo)
	howTo := NewContentService(s.db, models.TableHowToParticipate)

	_, err := info.Create(s.ctx, &CreateContentRequest{Title: "Second", OrderIndex: 2})
	s.Require().NoError(err)
	_, err = info.Create(s.ctx, &CreateContentRequest{Title: "First", OrderIndex: 1})
	s.Require().NoError(err)
	step, err := howTo.Create(s.ctx, &CreateContentRequest{Title: "Sign up"})
	s.Require().NoError(err)
	s.Equal(0, step.OrderIndex)

	sections, err := info.List(s.ctx, &ContentListRequest{})
	s.Require().NoError(err)
	s.Require().Len(sections, 2)
	s.Equal("First", sections[0].Title)
	s.Equal("Second", sections[1].Title)

	updated, err := howTo.Update(s.ctx, step.ID, &UpdateContentRequest{Content: ptr("Create an account")})
	s.Require().NoError(err)
	s.Equal("Sign up", updated.Title)
	s.Equal("Create an account", updated.Content)

	steps, err := howTo.List(s.ctx, &ContentListRequest{})
	s.Require().NoError(err)
	s.Len(steps, 1)
}

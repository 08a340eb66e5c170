package nearby_test

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/autonomy-nearby/mocks"
	"github.com/bitmark-inc/autonomy-nearby/nearby"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

type RegistryTestSuite struct {
	storeSuite
	ctrl      *gomock.Controller
	scheduler *mocks.MockExpiryScheduler
	registry  *nearby.Registry
}

func (s *RegistryTestSuite) SetupTest() {
	s.storeSuite.SetupTest()

	s.ctrl = gomock.NewController(s.T())
	s.scheduler = mocks.NewMockExpiryScheduler(s.ctrl)
	s.scheduler.EXPECT().ScheduleExpiry(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.registry = nearby.NewRegistry(s.store, s.scheduler)
	s.registry.SetClock(s.clock)

	s.addActor("author", schema.RoleMember, &locationBitmark)
	s.addActor("neighbour", schema.RoleVolunteer, &locationSinica)
}

func (s *RegistryTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.storeSuite.TearDownTest()
}

func (s *RegistryTestSuite) input(author string, loc schema.Location) nearby.CreateHelp {
	return nearby.CreateHelp{
		AuthorID:    author,
		Kind:        schema.HelpNeed,
		Category:    "groceries",
		Description: "need someone to buy rice",
		Location:    loc,
	}
}

func (s *RegistryTestSuite) TestCreate() {
	help, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)
	s.Equal(schema.HelpActive, help.Status)
	s.Equal("author", help.AuthorID)
	s.Equal(t0, help.CreatedAt)
	s.Equal(t0.Add(30*time.Minute), help.ExpiresAt)
	s.Nil(help.AcceptedResponseID)
}

func (s *RegistryTestSuite) TestCreateSchedulesExpiry() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	scheduler := mocks.NewMockExpiryScheduler(ctrl)
	registry := nearby.NewRegistry(s.store, scheduler)
	registry.SetClock(s.clock)

	scheduler.EXPECT().ScheduleExpiry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, help schema.HelpRequest) error {
			s.Equal("author", help.AuthorID)
			s.Equal(t0.Add(30*time.Minute), help.ExpiresAt)
			return errors.New("cadence is down")
		}).Times(1)

	// a failed schedule never fails the creation
	_, err := registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)
}

func (s *RegistryTestSuite) TestCreateWithoutScheduler() {
	registry := nearby.NewRegistry(s.store, nil)
	registry.SetClock(s.clock)

	_, err := registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)
}

func (s *RegistryTestSuite) TestCreateValidation() {
	voice := "  "
	cases := map[string]func(c *nearby.CreateHelp){
		"no author":        func(c *nearby.CreateHelp) { c.AuthorID = "" },
		"unknown kind":     func(c *nearby.CreateHelp) { c.Kind = "BARTER" },
		"empty category":   func(c *nearby.CreateHelp) { c.Category = "   " },
		"no content":       func(c *nearby.CreateHelp) { c.Description = ""; c.VoiceRef = &voice },
		"bad latitude":     func(c *nearby.CreateHelp) { c.Location.Latitude = 91 },
		"bad longitude":    func(c *nearby.CreateHelp) { c.Location.Longitude = -181 },
		"NaN latitude":     func(c *nearby.CreateHelp) { c.Location.Latitude = math.NaN() },
		"NaN longitude":    func(c *nearby.CreateHelp) { c.Location.Longitude = math.NaN() },
		"infinite":         func(c *nearby.CreateHelp) { c.Location.Longitude = math.Inf(1) },
		"long category":    func(c *nearby.CreateHelp) { c.Category = string(make([]byte, 65)) },
		"long description": func(c *nearby.CreateHelp) { c.Description = string(make([]byte, 1001)) },
	}

	for name, mutate := range cases {
		input := s.input("author", locationBitmark)
		mutate(&input)

		_, err := s.registry.Create(context.Background(), input)
		s.Truef(errors.Is(err, nearby.ErrValidation), "%s: %v", name, err)
	}

	// nothing above left a request blocking the author
	_, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)
}

func (s *RegistryTestSuite) TestCreateVoiceOnly() {
	voice := "voice/abc.m4a"
	input := s.input("author", locationBitmark)
	input.Description = ""
	input.VoiceRef = &voice

	help, err := s.registry.Create(context.Background(), input)
	s.NoError(err)
	s.Equal(voice, *help.VoiceRef)
}

func (s *RegistryTestSuite) TestCreateWhileRunning() {
	_, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)

	s.advance(10 * time.Minute)
	_, err = s.registry.Create(context.Background(), s.input("author", locationSinica))
	s.True(errors.Is(err, nearby.ErrConflict), err)

	s.advance(21 * time.Minute)
	_, err = s.registry.Create(context.Background(), s.input("author", locationSinica))
	s.NoError(err)
}

func (s *RegistryTestSuite) TestCreateAfterResolve() {
	help, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)
	s.NoError(s.registry.Resolve(context.Background(), help.ID, "author"))

	_, err = s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)
}

func (s *RegistryTestSuite) TestCreateConcurrently() {
	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.registry.Create(context.Background(), s.input("author", locationBitmark))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errors.Is(err, nearby.ErrConflict), err)
	}
	s.Equal(1, succeeded)
}

func (s *RegistryTestSuite) TestLazyExpiry() {
	help, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)

	s.advance(29 * time.Minute)
	current, err := s.registry.Get(context.Background(), help.ID)
	s.NoError(err)
	s.Equal(schema.HelpActive, current.Status)

	s.advance(2 * time.Minute)
	current, err = s.registry.Get(context.Background(), help.ID)
	s.NoError(err)
	s.Equal(schema.HelpExpired, current.Status)

	// nothing swept the stored row
	stored, err := s.store.GetHelp(help.ID)
	s.NoError(err)
	s.Equal(schema.HelpActive, stored.Status)

	err = s.registry.Resolve(context.Background(), help.ID, "author")
	s.True(errors.Is(err, nearby.ErrRequestClosed), err)
}

func (s *RegistryTestSuite) TestGetNotFound() {
	_, err := s.registry.Get(context.Background(), "missing")
	s.True(errors.Is(err, nearby.ErrNotFound), err)
}

func (s *RegistryTestSuite) TestResolve() {
	help, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)

	err = s.registry.Resolve(context.Background(), "missing", "author")
	s.True(errors.Is(err, nearby.ErrNotFound), err)

	err = s.registry.Resolve(context.Background(), help.ID, "neighbour")
	s.True(errors.Is(err, nearby.ErrUnauthorized), err)

	s.advance(time.Minute)
	s.NoError(s.registry.Resolve(context.Background(), help.ID, "author"))

	current, err := s.registry.Get(context.Background(), help.ID)
	s.NoError(err)
	s.Equal(schema.HelpResolved, current.Status)
	s.Equal(t0.Add(time.Minute), current.ResolvedAt.UTC())

	err = s.registry.Resolve(context.Background(), help.ID, "author")
	s.True(errors.Is(err, nearby.ErrRequestClosed), err)

	// a resolved request stays resolved after its expiry
	s.advance(time.Hour)
	current, err = s.registry.Get(context.Background(), help.ID)
	s.NoError(err)
	s.Equal(schema.HelpResolved, current.Status)
}

func (s *RegistryTestSuite) TestListActiveNearby() {
	s.addActor("station", schema.RoleMember, &locationTaipeiTrainStation)
	s.addActor("south", schema.RoleMember, &locationKaohsiung)
	s.addActor("quitter", schema.RoleMember, &locationNangangStation)

	near, err := s.registry.Create(context.Background(), s.input("neighbour", locationSinica))
	s.NoError(err)
	nearest, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)
	_, err = s.registry.Create(context.Background(), s.input("station", locationTaipeiTrainStation))
	s.NoError(err)
	_, err = s.registry.Create(context.Background(), s.input("south", locationKaohsiung))
	s.NoError(err)
	resolved, err := s.registry.Create(context.Background(), s.input("quitter", locationNangangStation))
	s.NoError(err)
	s.NoError(s.registry.Resolve(context.Background(), resolved.ID, "quitter"))

	helps, err := s.registry.ListActiveNearby(context.Background(), locationBitmark, 5)
	s.NoError(err)
	s.Len(helps, 2)
	s.Equal(nearest.ID, helps[0].ID)
	s.Equal(0.0, helps[0].DistanceKm)
	s.Equal(near.ID, helps[1].ID)
	s.InDelta(2.0, helps[1].DistanceKm, 0.2)
	for _, h := range helps {
		s.True(h.DistanceKm <= 5.0)
	}

	s.advance(30 * time.Minute)
	helps, err = s.registry.ListActiveNearby(context.Background(), locationBitmark, 5)
	s.NoError(err)
	s.Len(helps, 0)
}

func (s *RegistryTestSuite) TestListActiveNearbyTiesOrderedByID() {
	ids := make([]string, 0, 4)
	for _, author := range []string{"tie1", "tie2", "tie3", "tie4"} {
		s.addActor(author, schema.RoleMember, &locationSinica)
		help, err := s.registry.Create(context.Background(), s.input(author, locationSinica))
		s.NoError(err)
		ids = append(ids, help.ID)
	}
	sort.Strings(ids)

	helps, err := s.registry.ListActiveNearby(context.Background(), locationBitmark, 5)
	s.NoError(err)
	s.Len(helps, 4)
	for i, h := range helps {
		s.Equal(ids[i], h.ID)
		s.Equal(helps[0].DistanceKm, h.DistanceKm)
	}
}

func (s *RegistryTestSuite) TestListActiveNearbyValidation() {
	_, err := s.registry.ListActiveNearby(context.Background(), locationBitmark, 0)
	s.True(errors.Is(err, nearby.ErrValidation), err)

	_, err = s.registry.ListActiveNearby(context.Background(), locationBitmark, 101)
	s.True(errors.Is(err, nearby.ErrValidation), err)

	_, err = s.registry.ListActiveNearby(context.Background(), schema.Location{Latitude: -91}, 5)
	s.True(errors.Is(err, nearby.ErrValidation), err)
}

func (s *RegistryTestSuite) TestGetOwn() {
	own, err := s.registry.GetOwn(context.Background(), "author")
	s.NoError(err)
	s.Nil(own)

	help, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)

	coordinator := nearby.NewCoordinator(s.store, nil, nil)
	coordinator.SetClock(s.clock)
	_, err = coordinator.Respond(context.Background(), help.ID, "neighbour", "on my way")
	s.NoError(err)

	own, err = s.registry.GetOwn(context.Background(), "author")
	s.NoError(err)
	s.Equal(help.ID, own.Request.ID)
	s.Equal(schema.HelpActive, own.Request.Status)
	s.Len(own.Responses, 1)
	s.Equal("neighbour", own.Responses[0].HelperID)

	s.advance(31 * time.Minute)
	own, err = s.registry.GetOwn(context.Background(), "author")
	s.NoError(err)
	s.Nil(own)
}

func (s *RegistryTestSuite) TestSweep() {
	first, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)

	s.advance(20 * time.Minute)
	second, err := s.registry.Create(context.Background(), s.input("neighbour", locationSinica))
	s.NoError(err)

	s.advance(15 * time.Minute)
	n, err := s.registry.Sweep(context.Background())
	s.NoError(err)
	s.Equal(int64(1), n)

	stored, err := s.store.GetHelp(first.ID)
	s.NoError(err)
	s.Equal(schema.HelpExpired, stored.Status)

	stored, err = s.store.GetHelp(second.ID)
	s.NoError(err)
	s.Equal(schema.HelpActive, stored.Status)

	n, err = s.registry.Sweep(context.Background())
	s.NoError(err)
	s.Equal(int64(0), n)
}

func (s *RegistryTestSuite) TestExpire() {
	help, err := s.registry.Create(context.Background(), s.input("author", locationBitmark))
	s.NoError(err)

	current, expired, err := s.registry.Expire(context.Background(), help.ID)
	s.NoError(err)
	s.False(expired)
	s.Equal(schema.HelpActive, current.Status)

	s.advance(30 * time.Minute)
	current, expired, err = s.registry.Expire(context.Background(), help.ID)
	s.NoError(err)
	s.True(expired)
	s.Equal(schema.HelpExpired, current.Status)

	_, expired, err = s.registry.Expire(context.Background(), help.ID)
	s.NoError(err)
	s.False(expired)

	_, _, err = s.registry.Expire(context.Background(), "missing")
	s.True(errors.Is(err, nearby.ErrNotFound), err)
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

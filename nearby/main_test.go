package nearby_test

import (
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/autonomy-nearby/schema"
	"github.com/bitmark-inc/autonomy-nearby/store"
)

var (
	locationBitmark            = schema.Location{Latitude: 25.061037, Longitude: 121.611905}
	locationSinica             = schema.Location{Latitude: 25.042959, Longitude: 121.616002}
	locationNangangStation     = schema.Location{Latitude: 25.052616, Longitude: 121.605387}
	locationTaipeiTrainStation = schema.Location{Latitude: 25.047950, Longitude: 121.517384}
	locationKaohsiung          = schema.Location{Latitude: 22.627278, Longitude: 120.301435}

	t0 = time.Date(2020, 5, 25, 9, 0, 0, 0, time.UTC)
)

// storeSuite prepares an in-memory relational store with a controllable clock
type storeSuite struct {
	suite.Suite
	ormDB *gorm.DB
	store *store.AutonomyStore
	now   time.Time
}

func (s *storeSuite) SetupTest() {
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		s.T().Fatalf("open sqlite with error: %s", err)
	}
	db.DB().SetMaxOpenConns(1)

	if err := schema.Migrate(db); err != nil {
		s.T().Fatalf("migrate with error: %s", err)
	}

	s.ormDB = db
	s.store = store.NewAutonomyStore(db)
	s.now = t0
}

func (s *storeSuite) TearDownTest() {
	s.ormDB.Close()
}

func (s *storeSuite) clock() time.Time {
	return s.now
}

func (s *storeSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func (s *storeSuite) addActor(id string, role schema.Role, loc *schema.Location) {
	a := schema.Actor{
		ID:      id,
		Name:    "actor " + id,
		Role:    role,
		Active:  true,
		Contact: "+886912345678",
	}
	a.SetLocation(loc)
	if err := s.store.CreateActor(&a); err != nil {
		s.T().Fatal(err)
	}
}

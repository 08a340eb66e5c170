package api

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	gomock "github.com/golang/mock/gomock"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/autonomy-nearby/external/contact"
	"github.com/bitmark-inc/autonomy-nearby/mocks"
	"github.com/bitmark-inc/autonomy-nearby/nearby"
	"github.com/bitmark-inc/autonomy-nearby/schema"
	"github.com/bitmark-inc/autonomy-nearby/store"
)

var (
	locationBitmark        = schema.Location{Latitude: 25.061037, Longitude: 121.611905}
	locationSinica         = schema.Location{Latitude: 25.042959, Longitude: 121.616002}
	locationNangangStation = schema.Location{Latitude: 25.052616, Longitude: 121.605387}
)

const (
	adminKey  = "admin-key"
	metricKey = "metric-key"
)

type apiResult struct {
	Result json.RawMessage `json:"result"`
}

// apiSuite serves the full router on top of an in-memory store
type apiSuite struct {
	suite.Suite
	key      *rsa.PrivateKey
	ormDB    *gorm.DB
	store    *store.AutonomyStore
	geocoder *mocks.MockGeocoder
	server   *Server
	router   *gin.Engine
}

func (s *apiSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	viper.Set("server.apikey.admin", adminKey)
	viper.Set("server.apikey.metric", metricKey)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		s.T().Fatal(err)
	}
	s.key = key
}

func (s *apiSuite) SetupTest() {
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		s.T().Fatal(err)
	}
	db.DB().SetMaxOpenConns(1)
	if err := schema.Migrate(db); err != nil {
		s.T().Fatal(err)
	}
	s.ormDB = db
	s.store = store.NewAutonomyStore(db)

	s.addActor("userA", schema.RoleMember, &locationBitmark, true)
	s.addActor("userB", schema.RoleVolunteer, &locationSinica, true)
	s.addActor("userC", schema.RoleVolunteer, &locationNangangStation, true)
	s.addActor("userD", schema.RoleBusiness, nil, true)
	s.addActor("userE", schema.RoleVolunteer, &locationBitmark, false)

	directory, err := contact.NewDirectory(s.store, contact.SchemeTel)
	if err != nil {
		s.T().Fatal(err)
	}

	ctrl := gomock.NewController(s.T())
	s.geocoder = mocks.NewMockGeocoder(ctrl)

	s.server = NewServer(
		s.store,
		nearby.NewDiscovery(s.store),
		nearby.NewRegistry(s.store, nil),
		nearby.NewCoordinator(s.store, directory, nil),
		nearby.NewConnections(s.store, s.store),
		s.geocoder,
		nil,
		&s.key.PublicKey,
	)
	s.router = s.server.setupRouter()
}

func (s *apiSuite) TearDownTest() {
	s.ormDB.Close()
}

func (s *apiSuite) addActor(id string, role schema.Role, loc *schema.Location, active bool) {
	a := schema.Actor{
		ID:      id,
		Name:    "actor " + id,
		Role:    role,
		Active:  active,
		Contact: "+886 912 345 678",
	}
	a.SetLocation(loc)
	if err := s.store.CreateActor(&a); err != nil {
		s.T().Fatal(err)
	}
}

func (s *apiSuite) token(actorID string, key *rsa.PrivateKey, expiresIn time.Duration) string {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.StandardClaims{
		Subject:   actorID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(expiresIn).Unix(),
	})

	signed, err := token.SignedString(key)
	if err != nil {
		s.T().Fatal(err)
	}
	return signed
}

// call sends a request as actorID, an empty actorID sends no token
func (s *apiSuite) call(method, path, actorID string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var payload *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.T().Fatal(err)
		}
		payload = bytes.NewReader(b)
	}

	var req *http.Request
	if payload != nil {
		req = httptest.NewRequest(method, path, payload)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if actorID != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(actorID, s.key, time.Hour))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// result decodes the `result` field of a successful response into v
func (s *apiSuite) result(w *httptest.ResponseRecorder, v interface{}) {
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	var r apiResult
	s.NoError(json.Unmarshal(w.Body.Bytes(), &r))
	s.NoError(json.Unmarshal(r.Result, v))
}

// failure checks the status and error code of a failed response
func (s *apiSuite) failure(w *httptest.ResponseRecorder, status int, expected ErrorResponse) {
	s.Equal(status, w.Code, w.Body.String())

	var r ErrorResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &r))
	s.Equal(expected.Code, r.Code)
}

package api

import (
	"net/http"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/nearby"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

type HelpTestSuite struct {
	apiSuite
}

func (s *HelpTestSuite) askForHelp(actorID string) schema.HelpRequest {
	var help schema.HelpRequest
	s.result(s.call("POST", "/api/helps", actorID, map[string]interface{}{
		"kind":        schema.HelpNeed,
		"category":    "medicine",
		"description": "need some masks",
	}, nil), &help)
	return help
}

func (s *HelpTestSuite) respond(helpID, actorID string) schema.HelpResponse {
	var response schema.HelpResponse
	s.result(s.call("POST", "/api/helps/"+helpID+"/responses", actorID, map[string]string{
		"message": "on my way",
	}, nil), &response)
	return response
}

func (s *HelpTestSuite) TestAskForHelp() {
	help := s.askForHelp("userA")
	s.NotEmpty(help.ID)
	s.Equal("userA", help.AuthorID)
	s.Equal(schema.HelpActive, help.Status)
	s.Equal(locationBitmark, help.Location())
	s.Equal(help.CreatedAt.Add(consts.HelpRequestTTL), help.ExpiresAt)

	w := s.call("POST", "/api/helps", "userA", map[string]interface{}{
		"kind":        schema.HelpOffer,
		"category":    "food",
		"description": "lunch boxes",
	}, nil)
	s.failure(w, http.StatusConflict, errorConflict)
}

func (s *HelpTestSuite) TestAskForHelpAtAddress() {
	s.geocoder.EXPECT().ResolveCoordinates(gomock.Any(), "Academia Sinica").Return(&geo.Address{
		Location: locationSinica,
	}, nil)

	var help schema.HelpRequest
	s.result(s.call("POST", "/api/helps", "userD", map[string]interface{}{
		"kind":        schema.HelpOffer,
		"category":    "food",
		"description": "lunch boxes",
		"address":     "Academia Sinica",
	}, nil), &help)
	s.Equal(locationSinica, help.Location())
}

func (s *HelpTestSuite) TestAskForHelpValidation() {
	w := s.call("POST", "/api/helps", "userA", map[string]interface{}{
		"kind":     "MAYBE",
		"category": "medicine",
	}, nil)
	s.failure(w, http.StatusBadRequest, errorInvalidParameters)

	w = s.call("POST", "/api/helps", "userA", map[string]interface{}{
		"kind":        schema.HelpNeed,
		"category":    "medicine",
		"description": "masks",
		"location":    map[string]float64{"latitude": 91, "longitude": 121},
	}, nil)
	s.failure(w, http.StatusBadRequest, errorInvalidParameters)

	w = s.call("POST", "/api/helps", "userD", map[string]interface{}{
		"kind":        schema.HelpNeed,
		"category":    "medicine",
		"description": "masks",
	}, nil)
	s.failure(w, http.StatusBadRequest, errorUnknownActorLocation)
}

func (s *HelpTestSuite) TestListNearbyHelps() {
	help := s.askForHelp("userA")

	var helps []nearby.NearbyHelp
	s.result(s.call("GET", "/api/helps?radius=5", "userB", nil, nil), &helps)
	s.Len(helps, 1)
	s.Equal(help.ID, helps[0].ID)
	s.True(helps[0].DistanceKm > 0)

	s.result(s.call("GET", "/api/helps?lat=22.627278&lng=120.301435", "userB", nil, nil), &helps)
	s.Len(helps, 0)
}

func (s *HelpTestSuite) TestGetHelp() {
	help := s.askForHelp("userA")

	var fetched schema.HelpRequest
	s.result(s.call("GET", "/api/helps/"+help.ID, "userB", nil, nil), &fetched)
	s.Equal(help.ID, fetched.ID)

	w := s.call("GET", "/api/helps/missing", "userB", nil, nil)
	s.failure(w, http.StatusNotFound, errorNotFound)
}

func (s *HelpTestSuite) TestMatchingFlow() {
	help := s.askForHelp("userA")

	responseB := s.respond(help.ID, "userB")
	s.Equal(schema.ResponsePending, responseB.Status)
	responseC := s.respond(help.ID, "userC")

	w := s.call("POST", "/api/helps/"+help.ID+"/responses", "userB", nil, nil)
	s.failure(w, http.StatusConflict, errorConflict)

	w = s.call("POST", "/api/helps/"+help.ID+"/responses", "userA", nil, nil)
	s.failure(w, http.StatusForbidden, errorNotPermitted)

	var own nearby.OwnHelp
	s.result(s.call("GET", "/api/me/help", "userA", nil, nil), &own)
	s.Equal(help.ID, own.Request.ID)
	s.Len(own.Responses, 2)

	w = s.call("POST", "/api/responses/"+responseB.ID+"/accept", "userB", nil, nil)
	s.failure(w, http.StatusForbidden, errorNotPermitted)

	var accepted nearby.AcceptResult
	s.result(s.call("POST", "/api/responses/"+responseB.ID+"/accept", "userA", nil, nil), &accepted)
	s.Equal(schema.ResponseAccepted, accepted.Response.Status)
	s.Equal("tel:+886912345678", accepted.ContactHandle)

	w = s.call("POST", "/api/responses/"+responseC.ID+"/accept", "userA", nil, nil)
	s.failure(w, http.StatusConflict, errorAlreadyAccepted)

	var views []nearby.HelperView
	s.result(s.call("GET", "/api/me/responses", "userC", nil, nil), &views)
	s.Len(views, 1)
	s.True(views[0].Superseded)
	s.Equal(schema.ResponsePending, views[0].Response.Status)

	s.result(s.call("GET", "/api/me/responses", "userB", nil, nil), &views)
	s.Len(views, 1)
	s.False(views[0].Superseded)

	w = s.call("POST", "/api/helps/"+help.ID+"/resolve", "userB", nil, nil)
	s.failure(w, http.StatusForbidden, errorNotPermitted)

	w = s.call("POST", "/api/helps/"+help.ID+"/resolve", "userA", nil, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.call("POST", "/api/helps/"+help.ID+"/resolve", "userA", nil, nil)
	s.failure(w, http.StatusGone, errorRequestClosed)

	w = s.call("POST", "/api/helps/"+help.ID+"/responses", "userD", nil, nil)
	s.failure(w, http.StatusGone, errorRequestClosed)

	var none *nearby.OwnHelp
	s.result(s.call("GET", "/api/me/help", "userA", nil, nil), &none)
	s.Nil(none)
}

func (s *HelpTestSuite) TestAcceptHelperWithoutContact() {
	silent := schema.Actor{ID: "userF", Name: "actor userF", Role: schema.RoleVolunteer, Active: true}
	silent.SetLocation(&locationSinica)
	s.NoError(s.store.CreateActor(&silent))

	help := s.askForHelp("userA")
	responseF := s.respond(help.ID, "userF")
	responseB := s.respond(help.ID, "userB")

	w := s.call("POST", "/api/responses/"+responseF.ID+"/accept", "userA", nil, nil)
	s.failure(w, http.StatusUnprocessableEntity, errorUnreachable)

	// the request is still open for the other helpers
	var accepted nearby.AcceptResult
	s.result(s.call("POST", "/api/responses/"+responseB.ID+"/accept", "userA", nil, nil), &accepted)
	s.Equal(schema.ResponseAccepted, accepted.Response.Status)
}

func (s *HelpTestSuite) TestAcceptUnknownResponse() {
	w := s.call("POST", "/api/responses/missing/accept", "userA", nil, nil)
	s.failure(w, http.StatusNotFound, errorNotFound)
}

func TestHelpTestSuite(t *testing.T) {
	suite.Run(t, new(HelpTestSuite))
}

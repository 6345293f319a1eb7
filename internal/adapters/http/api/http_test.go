package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/mergington/activities/internal/adapters/http/api"
	"github.com/mergington/activities/internal/adapters/repository"
	service "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/domain/types"
	"github.com/mergington/activities/pkg/logger"
)

func init() {
	logger.Init()
}

// Mock implementations for testing
type mockRegistry struct {
	activities    map[string]types.Activity
	signupErr     error
	unregisterErr error
	signups       []string
	unregisters   []string
}

func (m *mockRegistry) ListActivities(ctx context.Context) map[string]types.Activity {
	return m.activities
}

func (m *mockRegistry) Signup(ctx context.Context, activity, email string) error {
	m.signups = append(m.signups, activity+"/"+email)
	return m.signupErr
}

func (m *mockRegistry) Unregister(ctx context.Context, activity, email string) error {
	m.unregisters = append(m.unregisters, activity+"/"+email)
	return m.unregisterErr
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

// newTestRouter builds a chi router with all API routes attached, the same
// shape main assembles in production.
func newTestRouter(deps api.Dependencies, stats api.StatsProvider) chi.Router {
	r := chi.NewRouter()
	server := api.NewServer(deps, stats)
	server.Register(context.Background(), r)
	return r
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server on a chi router", t, func() {
		deps := &mockRegistry{
			activities: map[string]types.Activity{
				"Chess Club": {Description: "Chess", Schedule: "Fridays", MaxParticipants: 12, Participants: []string{}},
			},
		}
		router := newTestRouter(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})

		Convey("Then the health endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
		})

		Convey("And the activities endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And signup should only accept POST", func() {
			req := httptest.NewRequest("GET", "/activities/Chess%20Club/signup?email=x@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("And unregister should only accept DELETE", func() {
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/unregister?email=x@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("And unknown routes should return 404", func() {
			req := httptest.NewRequest("GET", "/nonexistent", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestActivitiesHandler_HandleListActivities(t *testing.T) {
	Convey("Given an activities handler behind the router", t, func() {
		deps := &mockRegistry{
			activities: map[string]types.Activity{
				"Chess Club": {
					Description:     "Learn strategies and compete in chess tournaments",
					Schedule:        "Fridays, 3:30 PM - 5:00 PM",
					MaxParticipants: 12,
					Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
				},
				"Art Studio": {
					Description:     "Explore painting, drawing, and sculpture techniques",
					Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
					MaxParticipants: 16,
					Participants:    []string{},
				},
			},
		}
		router := newTestRouter(deps, &mockStatsProvider{})

		Convey("When listing activities", func() {
			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the response is an object keyed by activity name", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var response map[string]types.Activity
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(len(response), ShouldEqual, 2)
				So(response["Chess Club"].MaxParticipants, ShouldEqual, 12)
				So(response["Chess Club"].Participants, ShouldContain, "michael@mergington.edu")
			})

			Convey("And the name never repeats inside each value", func() {
				var raw map[string]map[string]interface{}
				err := json.NewDecoder(w.Body).Decode(&raw)
				So(err, ShouldBeNil)
				_, hasName := raw["Chess Club"]["name"]
				So(hasName, ShouldBeFalse)
			})

			Convey("And empty rosters encode as an empty array, not null", func() {
				So(w.Body.String(), ShouldContainSubstring, `"participants":[]`)
			})
		})
	})
}

func TestSignupHandler_HandleSignup(t *testing.T) {
	Convey("Given a signup handler behind the router", t, func() {
		deps := &mockRegistry{}
		router := newTestRouter(deps, &mockStatsProvider{})

		Convey("When signing up with a valid email", func() {
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/signup?email=new@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should confirm the signup", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var response messageResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Message, ShouldEqual, "new@mergington.edu signed up for Chess Club")
			})

			Convey("And the decoded activity name reaches the service", func() {
				So(deps.signups, ShouldContain, "Chess Club/new@mergington.edu")
			})
		})

		Convey("When the email parameter is missing", func() {
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/signup", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should reject the request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response detailResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Detail, ShouldEqual, "email is required")
			})
		})

		Convey("When the email parameter is blank", func() {
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/signup?email=", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should reject the request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the activity does not exist", func() {
			deps.signupErr = repository.ErrNotFound
			req := httptest.NewRequest("POST", "/activities/Knitting/signup?email=new@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)

				var response detailResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Detail, ShouldEqual, "Activity not found")
			})
		})

		Convey("When the student is already registered", func() {
			deps.signupErr = repository.ErrAlreadyRegistered
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/signup?email=michael@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should reject the duplicate", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response detailResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Detail, ShouldEqual, "michael@mergington.edu is already registered for Chess Club")
			})
		})

		Convey("When the service fails unexpectedly", func() {
			deps.signupErr = fmt.Errorf("registry wedged")
			req := httptest.NewRequest("POST", "/activities/Chess%20Club/signup?email=new@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should return an internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestUnregisterHandler_HandleUnregister(t *testing.T) {
	Convey("Given an unregister handler behind the router", t, func() {
		deps := &mockRegistry{}
		router := newTestRouter(deps, &mockStatsProvider{})

		Convey("When unregistering a registered student", func() {
			req := httptest.NewRequest("DELETE", "/activities/Drama%20Club/unregister?email=lisa@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should confirm the removal", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var response messageResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Message, ShouldEqual, "lisa@mergington.edu unregistered from Drama Club")
				So(deps.unregisters, ShouldContain, "Drama Club/lisa@mergington.edu")
			})
		})

		Convey("When the email parameter is missing", func() {
			req := httptest.NewRequest("DELETE", "/activities/Drama%20Club/unregister", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should reject the request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response detailResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Detail, ShouldEqual, "email is required")
			})
		})

		Convey("When the activity does not exist", func() {
			deps.unregisterErr = repository.ErrNotFound
			req := httptest.NewRequest("DELETE", "/activities/Knitting/unregister?email=x@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)

				var response detailResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Detail, ShouldEqual, "Activity not found")
			})
		})

		Convey("When the student is not registered", func() {
			deps.unregisterErr = repository.ErrNotRegistered
			req := httptest.NewRequest("DELETE", "/activities/Drama%20Club/unregister?email=ghost@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should reject the request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response detailResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Detail, ShouldEqual, "ghost@mergington.edu is not registered for Drama Club")
			})
		})

		Convey("When the service fails unexpectedly", func() {
			deps.unregisterErr = fmt.Errorf("registry wedged")
			req := httptest.NewRequest("DELETE", "/activities/Drama%20Club/unregister?email=x@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should return an internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		mockStats := &mockStatsProvider{
			stats: map[string]interface{}{
				"started":      true,
				"activities":   9,
				"participants": 18,
			},
		}
		router := newTestRouter(&mockRegistry{}, mockStats)

		Convey("When handling a stats request", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should return the stats", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var response map[string]interface{}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response["started"], ShouldEqual, true)
				So(response["activities"], ShouldEqual, 9)
				So(response["participants"], ShouldEqual, 18)
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		router := newTestRouter(&mockRegistry{}, &mockStatsProvider{})

		Convey("When handling a health check request", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should serve the metrics exposition", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "mhs_activities_")
			})
		})
	})
}

// TestWireContract drives the routes against a real service so the exact
// response bodies the signup page depends on stay pinned down.
func TestWireContract(t *testing.T) {
	Convey("Given the API wired to a running service", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		Reset(func() { svc.Stop() })
		router := newTestRouter(svc, svc)

		getActivities := func() map[string]types.Activity {
			req := httptest.NewRequest("GET", "/activities", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			var out map[string]types.Activity
			So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
			return out
		}

		Convey("Then the seeded catalog lists nine activities", func() {
			listed := getActivities()
			So(len(listed), ShouldEqual, 9)
			So(listed, ShouldContainKey, "Soccer Team")
			So(listed, ShouldContainKey, "Swimming Club")

			soccer := listed["Soccer Team"]
			So(soccer.Description, ShouldNotBeEmpty)
			So(soccer.Schedule, ShouldNotBeEmpty)
			So(soccer.MaxParticipants, ShouldEqual, 25)
			So(soccer.Participants, ShouldResemble, []string{"alex@mergington.edu", "sarah@mergington.edu"})
		})

		Convey("When a new student signs up", func() {
			req := httptest.NewRequest("POST", "/activities/Soccer%20Team/signup?email=newstudent@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the signup is confirmed and visible in the list", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var response messageResponse
				So(json.NewDecoder(w.Body).Decode(&response), ShouldBeNil)
				So(response.Message, ShouldEqual, "newstudent@mergington.edu signed up for Soccer Team")

				So(getActivities()["Soccer Team"].Participants, ShouldContain, "newstudent@mergington.edu")
			})

			Convey("And a second signup with the same email is rejected", func() {
				req2 := httptest.NewRequest("POST", "/activities/Soccer%20Team/signup?email=newstudent@mergington.edu", nil)
				w2 := httptest.NewRecorder()
				router.ServeHTTP(w2, req2)
				So(w2.Code, ShouldEqual, http.StatusBadRequest)

				var response detailResponse
				So(json.NewDecoder(w2.Body).Decode(&response), ShouldBeNil)
				So(response.Detail, ShouldContainSubstring, "already registered")
			})
		})

		Convey("When signing up for an unknown activity", func() {
			req := httptest.NewRequest("POST", "/activities/Nonexistent%20Activity/signup?email=test@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)

				var response detailResponse
				So(json.NewDecoder(w.Body).Decode(&response), ShouldBeNil)
				So(response.Detail, ShouldEqual, "Activity not found")
			})
		})

		Convey("When a seeded student unregisters", func() {
			req := httptest.NewRequest("DELETE", "/activities/Soccer%20Team/unregister?email=alex@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the removal is confirmed and visible in the list", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var response messageResponse
				So(json.NewDecoder(w.Body).Decode(&response), ShouldBeNil)
				So(response.Message, ShouldEqual, "alex@mergington.edu unregistered from Soccer Team")

				So(getActivities()["Soccer Team"].Participants, ShouldNotContain, "alex@mergington.edu")
			})
		})

		Convey("When unregistering a student who never signed up", func() {
			req := httptest.NewRequest("DELETE", "/activities/Soccer%20Team/unregister?email=notregistered@mergington.edu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then it should reject the request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response detailResponse
				So(json.NewDecoder(w.Body).Decode(&response), ShouldBeNil)
				So(response.Detail, ShouldContainSubstring, "not registered")
			})
		})

		Convey("When a student joins and then leaves Drama Club", func() {
			email := "workflow@mergington.edu"
			before := len(getActivities()["Drama Club"].Participants)

			signup := httptest.NewRequest("POST", "/activities/Drama%20Club/signup?email="+email, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, signup)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(getActivities()["Drama Club"].Participants), ShouldEqual, before+1)

			unregister := httptest.NewRequest("DELETE", "/activities/Drama%20Club/unregister?email="+email, nil)
			w = httptest.NewRecorder()
			router.ServeHTTP(w, unregister)
			So(w.Code, ShouldEqual, http.StatusOK)

			Convey("Then the roster returns to its prior size", func() {
				listed := getActivities()["Drama Club"]
				So(len(listed.Participants), ShouldEqual, before)
				So(listed.Participants, ShouldNotContain, email)
			})
		})

		Convey("When one student joins several activities", func() {
			email := "multisport@mergington.edu"
			for _, name := range []string{"Soccer Team", "Swimming Club", "Chess Club"} {
				req := httptest.NewRequest("POST", "/activities/"+url.PathEscape(name)+"/signup?email="+email, nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			}

			Convey("Then each roster contains the student", func() {
				listed := getActivities()
				So(listed["Soccer Team"].Participants, ShouldContain, email)
				So(listed["Swimming Club"].Participants, ShouldContain, email)
				So(listed["Chess Club"].Participants, ShouldContain, email)
			})
		})
	})
}

// Local types for testing
type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercise-tracker/internal/api/types"
	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository/memory"
	"exercise-tracker/internal/service"
)

var testNow = time.Date(2024, time.January, 1, 9, 45, 0, 0, time.UTC)

type testEnv struct {
	t      *testing.T
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	svc := service.NewTrackerService(store.Users(), store.Exercises(),
		service.WithClock(func() time.Time { return testNow }))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tracker := NewTrackerHandler(svc, logger)
	view := NewViewHandler(svc, logger)

	r := chi.NewRouter()
	r.Get("/", view.Index)
	r.Post("/api/users", tracker.CreateUser)
	r.Get("/api/users", tracker.ListUsers)
	r.Post("/api/users/{userID}/exercises", tracker.AddExercise)
	r.Get("/api/users/{userID}/logs", tracker.GetLog)

	return &testEnv{t: t, router: r}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) createUser(username string) types.UserResponse {
	e.t.Helper()
	rr := e.postForm("/api/users", url.Values{"username": {username}})
	require.Equal(e.t, http.StatusOK, rr.Code, rr.Body.String())
	var user types.UserResponse
	require.NoError(e.t, json.Unmarshal(rr.Body.Bytes(), &user))
	return user
}

func (e *testEnv) addExercise(userID string, form url.Values) *httptest.ResponseRecorder {
	return e.postForm("/api/users/"+userID+"/exercises", form)
}

func (e *testEnv) getLog(path string) types.LogResponse {
	e.t.Helper()
	rr := e.get(path)
	require.Equal(e.t, http.StatusOK, rr.Code, rr.Body.String())
	var resp types.LogResponse
	require.NoError(e.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	rr := env.postForm("/api/users", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body["_id"])
	assert.Equal(t, "alice", body["username"])
}

func TestCreateUserAcceptsJSON(t *testing.T) {
	env := newTestEnv(t)

	rr := env.postJSON("/api/users", `{"username":"json-user"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"json-user"`)
}

func TestCreateUserDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice")

	rr := env.postForm("/api/users", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "An error occurred while creating a user.", rr.Body.String())

	var users []types.UserResponse
	require.NoError(t, json.Unmarshal(env.get("/api/users").Body.Bytes(), &users))
	assert.Len(t, users, 1)
}

func TestCreateUserMissingUsername(t *testing.T) {
	env := newTestEnv(t)

	rr := env.postForm("/api/users", url.Values{})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "An error occurred while creating a user.", rr.Body.String())
}

func TestListUsersIncludesEachUserOnce(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice")
	bob := env.createUser("bob")

	rr := env.get("/api/users")
	require.Equal(t, http.StatusOK, rr.Code)

	var users []types.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	assert.Equal(t, []types.UserResponse{alice, bob}, users)
}

func TestListUsersEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/api/users")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestAddExerciseWithDate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")

	rr := env.addExercise(user.ID, url.Values{
		"description": {"morning run"},
		"duration":    {"30"},
		"date":        {"2023-01-15"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.JSONEq(t, fmt.Sprintf(`{
		"username": "alice",
		"description": "morning run",
		"duration": 30,
		"date": "Sun Jan 15 2023",
		"_id": %q
	}`, user.ID), rr.Body.String())
}

func TestAddExerciseWithoutDateUsesToday(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")

	rr := env.addExercise(user.ID, url.Values{"description": {"swim"}, "duration": {"45"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp types.ExerciseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, domain.FormatDate(testNow), resp.Date)
	assert.Equal(t, "Mon Jan 01 2024", resp.Date)
}

func TestAddExerciseJSONBody(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")

	rr := env.postJSON("/api/users/"+user.ID+"/exercises", `{"description":"row","duration":12.5,"date":"2023-02-01"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp types.ExerciseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "12.5", resp.Duration.String())
	assert.Equal(t, "Wed Feb 01 2023", resp.Date)
	assert.Equal(t, user.ID, resp.ID)
}

func TestAddExerciseValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")

	tests := []struct {
		name    string
		form    url.Values
		wantErr string
	}{
		{"missing description", url.Values{"duration": {"10"}}, "description is required"},
		{"missing duration", url.Values{"description": {"run"}}, "duration is required"},
		{"non-numeric duration", url.Values{"description": {"run"}, "duration": {"ten"}}, `duration "ten" is not a number`},
		{"malformed date", url.Values{"description": {"run"}, "duration": {"10"}, "date": {"15-01-2023"}}, "invalid date"},
		{"huge exponent duration", url.Values{"description": {"run"}, "duration": {"1e2000000000"}}, "duration is out of range"},
		{"infinite as float duration", url.Values{"description": {"run"}, "duration": {"1e400"}}, "duration is out of range"},
		{"duration above maximum", url.Values{"description": {"run"}, "duration": {"1000000001"}}, "duration is out of range"},
		{"too many decimal places", url.Values{"description": {"run"}, "duration": {"0.0000001"}}, "duration is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.addExercise(user.ID, tt.form)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}

	log := env.getLog("/api/users/" + user.ID + "/logs")
	assert.Equal(t, 0, log.Count)
}

func TestAddExerciseRejectsHugeJSONDuration(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")

	rr := env.postJSON("/api/users/"+user.ID+"/exercises", `{"description":"run","duration":1e30000000}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Less(t, rr.Body.Len(), 512)

	log := env.getLog("/api/users/" + user.ID + "/logs")
	assert.Equal(t, 0, log.Count)
}

func TestAddExerciseUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rr := env.addExercise("does-not-exist", url.Values{"description": {"run"}, "duration": {"10"}})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error)
}

func TestGetLogReturnsAllExercises(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")
	other := env.createUser("bob")

	for i := 1; i <= 3; i++ {
		rr := env.addExercise(user.ID, url.Values{
			"description": {fmt.Sprintf("session %d", i)},
			"duration":    {fmt.Sprintf("%d", i*10)},
			"date":        {fmt.Sprintf("2023-01-0%d", i)},
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}
	require.Equal(t, http.StatusOK, env.addExercise(other.ID, url.Values{"description": {"x"}, "duration": {"1"}}).Code)

	log := env.getLog("/api/users/" + user.ID + "/logs")
	assert.Equal(t, "alice", log.Username)
	assert.Equal(t, user.ID, log.ID)
	assert.Equal(t, 3, log.Count)
	require.Len(t, log.Log, 3)
	assert.Equal(t, types.LogEntry{Description: "session 1", Duration: "10", Date: "Sun Jan 01 2023"}, log.Log[0])
	assert.Equal(t, types.LogEntry{Description: "session 3", Duration: "30", Date: "Tue Jan 03 2023"}, log.Log[2])
}

func TestGetLogLimit(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, env.addExercise(user.ID, url.Values{"description": {"run"}, "duration": {"5"}}).Code)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"limit=2", 2},
		{"limit=2.9", 2},
		{"limit=10", 5},
		{"limit=abc", 5},
		{"limit=0", 5},
		{"limit=-1", 5},
		{"limit=", 5},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			log := env.getLog("/api/users/" + user.ID + "/logs?" + tt.query)
			assert.Equal(t, tt.want, log.Count)
			assert.Len(t, log.Log, tt.want)
		})
	}
}

func TestGetLogDateRange(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")
	for _, date := range []string{"2022-12-31", "2023-01-01", "2023-01-15", "2023-01-31", "2023-02-01"} {
		require.Equal(t, http.StatusOK, env.addExercise(user.ID, url.Values{
			"description": {"run on " + date},
			"duration":    {"20"},
			"date":        {date},
		}).Code)
	}

	log := env.getLog("/api/users/" + user.ID + "/logs?from=2023-01-01&to=2023-01-31")
	require.Equal(t, 3, log.Count)
	assert.Equal(t, "Sun Jan 01 2023", log.Log[0].Date)
	assert.Equal(t, "Sun Jan 15 2023", log.Log[1].Date)
	assert.Equal(t, "Tue Jan 31 2023", log.Log[2].Date)

	fromOnly := env.getLog("/api/users/" + user.ID + "/logs?from=2023-01-15")
	assert.Equal(t, 3, fromOnly.Count)

	toOnly := env.getLog("/api/users/" + user.ID + "/logs?to=2023-01-01")
	assert.Equal(t, 2, toOnly.Count)

	rangedAndLimited := env.getLog("/api/users/" + user.ID + "/logs?from=2023-01-01&to=2023-01-31&limit=1")
	require.Equal(t, 1, rangedAndLimited.Count)
	assert.Equal(t, "Sun Jan 01 2023", rangedAndLimited.Log[0].Date)
}

func TestGetLogMalformedBound(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")

	rr := env.get("/api/users/" + user.ID + "/logs?from=last-week")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error"`)
}

func TestGetLogUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/api/users/nope/logs")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rr.Body.String())
}

func TestRoundTripDescriptionAndDuration(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")

	rr := env.addExercise(user.ID, url.Values{"description": {"Intervals: 6×400m & cooldown"}, "duration": {"37.25"}})
	require.Equal(t, http.StatusOK, rr.Code)
	var added types.ExerciseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))

	log := env.getLog("/api/users/" + user.ID + "/logs")
	require.Len(t, log.Log, 1)
	assert.Equal(t, added.Description, log.Log[0].Description)
	assert.Equal(t, "Intervals: 6×400m & cooldown", log.Log[0].Description)
	assert.Equal(t, added.Duration, log.Log[0].Duration)
	assert.Equal(t, "37.25", log.Log[0].Duration.String())
}

func TestIndexListsUsersAndExercises(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice")
	require.Equal(t, http.StatusOK, env.addExercise(user.ID, url.Values{
		"description": {"<b>hill repeats</b>"},
		"duration":    {"25"},
		"date":        {"2023-01-15"},
	}).Code)

	rr := env.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	body := rr.Body.String()
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, user.ID)
	assert.Contains(t, body, "Sun Jan 15 2023")
	assert.Contains(t, body, "&lt;b&gt;hill repeats&lt;/b&gt;")
}

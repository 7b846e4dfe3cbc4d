package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(s Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	{
		api.POST("/teams", CreateTeam(s))
		api.GET("/teams", ListTeams(s))
		api.DELETE("/teams/:id", DeleteTeam(s))

		api.POST("/players", CreatePlayer(s))
		api.GET("/players", ListPlayers(s))
		api.DELETE("/players/:id", DeletePlayer(s))

		api.POST("/referees", CreateReferee(s))
		api.GET("/referees", ListReferees(s))

		api.POST("/matches", CreateMatch(s))
		api.GET("/matches", ListMatches(s))
		api.DELETE("/matches/:id", DeleteMatch(s))

		api.POST("/awards", CreateAward(s))
		api.GET("/awards", ListAwards(s))
		api.DELETE("/awards/:id", DeleteAward(s))

		q := api.Group("/queries")
		{
			q.GET("/highestKills", Report(s.TopKillers))
			q.GET("/semifinals", Report(s.Semifinals))
			q.GET("/activeReferees", Report(s.ActiveReferees))
			q.GET("/multiGamePlayers", Report(s.MultiGamePlayers))
			q.GET("/matchMVPs", Report(s.MatchMVPs))
			q.GET("/avgTeamScore", Report(s.AvgTeamScores))
			q.GET("/dualWinners", Report(s.DualWinners))
			q.GET("/drawMatches", Report(s.DrawMatches))
			q.GET("/zeroWinTeams", Report(s.ZeroWinTeams))
			q.GET("/top3Teams", Report(s.TopTeams))
		}
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func createTeam(t *testing.T, r *gin.Engine, name string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/teams", gin.H{
		"teamName": name, "gameName": "Valorant", "region": "EU",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[map[string]string](t, w)["id"]
}

func TestCreateTeamRoundTrip(t *testing.T) {
	r := newTestRouter(NewMemory())

	id := createTeam(t, r, "Night Owls")
	require.NotEmpty(t, id)

	w := doJSON(t, r, http.MethodGet, "/api/teams", nil)
	require.Equal(t, http.StatusOK, w.Code)
	teams := decode[[]Team](t, w)
	require.Len(t, teams, 1)

	assert.Equal(t, id, teams[0].ID.Hex())
	assert.Equal(t, "Night Owls", teams[0].TeamName)
	assert.Equal(t, "Valorant", teams[0].GameName)
	assert.Equal(t, "EU", teams[0].Region)
	assert.Zero(t, teams[0].Wins)
	assert.Zero(t, teams[0].TotalScore)
}

func TestCreatePlayerCoercion(t *testing.T) {
	r := newTestRouter(NewMemory())

	// kills as a string, assists absent, no team
	w := doJSON(t, r, http.MethodPost, "/api/players", gin.H{
		"gamertag": "Shroud", "gameName": "PUBG", "kills": "7",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/players", nil)
	players := decode[[]Player](t, w)
	require.Len(t, players, 1)
	assert.Equal(t, 7, players[0].Kills)
	assert.Zero(t, players[0].Assists)
	assert.Nil(t, players[0].TeamID)
}

func TestCreatePlayerBadTeamID(t *testing.T) {
	r := newTestRouter(NewMemory())

	w := doJSON(t, r, http.MethodPost, "/api/players", gin.H{
		"gamertag": "Shroud", "gameName": "PUBG", "teamId": "not-a-hex-id",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestCreateRefereeExperienceStrict(t *testing.T) {
	r := newTestRouter(NewMemory())

	// experience propagates parse failure
	w := doJSON(t, r, http.MethodPost, "/api/referees", gin.H{
		"refereeName": "Ivan", "experience": "many",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// matchesManaged falls back to 0
	w = doJSON(t, r, http.MethodPost, "/api/referees", gin.H{
		"refereeName": "Ivan", "gameName": "CS2", "experience": 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/referees", nil)
	refs := decode[[]Referee](t, w)
	require.Len(t, refs, 1)
	assert.Equal(t, 5, refs[0].Experience)
	assert.Zero(t, refs[0].MatchesManaged)
}

func TestDeleteTeamCascadesPlayers(t *testing.T) {
	r := newTestRouter(NewMemory())

	teamID := createTeam(t, r, "Night Owls")
	otherID := createTeam(t, r, "Iron Wolves")

	for _, body := range []gin.H{
		{"gamertag": "a", "gameName": "Valorant", "teamId": teamID},
		{"gamertag": "b", "gameName": "Valorant", "teamId": teamID},
		{"gamertag": "c", "gameName": "Valorant", "teamId": otherID},
		{"gamertag": "free", "gameName": "Valorant"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/players", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodDelete, "/api/teams/"+teamID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, w.Body.String())

	teams := decode[[]Team](t, doJSON(t, r, http.MethodGet, "/api/teams", nil))
	require.Len(t, teams, 1)
	assert.Equal(t, otherID, teams[0].ID.Hex())

	players := decode[[]Player](t, doJSON(t, r, http.MethodGet, "/api/players", nil))
	require.Len(t, players, 2)
	tags := []string{players[0].Gamertag, players[1].Gamertag}
	assert.ElementsMatch(t, []string{"c", "free"}, tags)
}

func TestDeleteMatchCascadesAwards(t *testing.T) {
	r := newTestRouter(NewMemory())

	teamA := createTeam(t, r, "A")
	teamB := createTeam(t, r, "B")

	w := doJSON(t, r, http.MethodPost, "/api/matches", gin.H{
		"gameName": "CS2", "round": "Final",
		"teamAId": teamA, "teamBId": teamB, "scoreA": 16, "scoreB": 12,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	matches := decode[[]Match](t, doJSON(t, r, http.MethodGet, "/api/matches", nil))
	require.Len(t, matches, 1)
	matchID := matches[0].ID.Hex()

	for _, body := range []gin.H{
		{"title": "Final MVP", "category": "MVP", "matchId": matchID},
		{"title": "Unrelated", "category": "Fair Play"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/awards", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/matches/"+matchID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	awards := decode[[]Award](t, doJSON(t, r, http.MethodGet, "/api/awards", nil))
	require.Len(t, awards, 1)
	assert.Equal(t, "Unrelated", awards[0].Title)
}

func TestDeletePlayerCascadesAwards(t *testing.T) {
	r := newTestRouter(NewMemory())

	w := doJSON(t, r, http.MethodPost, "/api/players", gin.H{
		"gamertag": "Shroud", "gameName": "PUBG",
	})
	require.Equal(t, http.StatusOK, w.Code)
	players := decode[[]Player](t, doJSON(t, r, http.MethodGet, "/api/players", nil))
	require.Len(t, players, 1)
	playerID := players[0].ID.Hex()

	w = doJSON(t, r, http.MethodPost, "/api/awards", gin.H{
		"title": "Week MVP", "category": "MVP", "playerId": playerID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/players/"+playerID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	awards := decode[[]Award](t, doJSON(t, r, http.MethodGet, "/api/awards", nil))
	assert.Empty(t, awards)
}

func TestCreateMatchWinnerBump(t *testing.T) {
	r := newTestRouter(NewMemory())

	winner := createTeam(t, r, "Winners")
	loser := createTeam(t, r, "Losers")

	w := doJSON(t, r, http.MethodPost, "/api/matches", gin.H{
		"gameName": "Dota 2", "round": "Semifinal",
		"teamAId": winner, "teamBId": loser,
		"scoreA": 2, "scoreB": 1, "winnerId": winner,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	teams := decode[[]Team](t, doJSON(t, r, http.MethodGet, "/api/teams", nil))
	byName := map[string]Team{}
	for _, t2 := range teams {
		byName[t2.TeamName] = t2
	}
	assert.Equal(t, 1, byName["Winners"].Wins)
	assert.Equal(t, 3, byName["Winners"].TotalScore)
	assert.Zero(t, byName["Losers"].Wins)
	assert.Zero(t, byName["Losers"].TotalScore)
}

func TestCreateMatchDrawNoBump(t *testing.T) {
	r := newTestRouter(NewMemory())

	teamA := createTeam(t, r, "A")
	teamB := createTeam(t, r, "B")

	w := doJSON(t, r, http.MethodPost, "/api/matches", gin.H{
		"gameName": "Dota 2", "round": "Group",
		"teamAId": teamA, "teamBId": teamB,
		"scoreA": 1, "scoreB": 1, "winnerId": nil,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	matches := decode[[]Match](t, doJSON(t, r, http.MethodGet, "/api/matches", nil))
	require.Len(t, matches, 1)
	assert.Nil(t, matches[0].WinnerID)

	teams := decode[[]Team](t, doJSON(t, r, http.MethodGet, "/api/teams", nil))
	for _, team := range teams {
		assert.Zero(t, team.Wins)
		assert.Zero(t, team.TotalScore)
	}
}

func TestCreateMatchBadTeamRef(t *testing.T) {
	r := newTestRouter(NewMemory())

	w := doJSON(t, r, http.MethodPost, "/api/matches", gin.H{
		"gameName": "CS2", "round": "Final",
		"teamAId": "nope", "teamBId": "alsonope",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	matches := decode[[]Match](t, doJSON(t, r, http.MethodGet, "/api/matches", nil))
	assert.Empty(t, matches)
}

func TestDeleteMalformedID(t *testing.T) {
	r := newTestRouter(NewMemory())

	for _, path := range []string{
		"/api/teams/xyz", "/api/players/xyz", "/api/matches/xyz", "/api/awards/xyz",
	} {
		w := doJSON(t, r, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
	}
}

func TestListEmptyCollectionsAreArrays(t *testing.T) {
	r := newTestRouter(NewMemory())

	for _, path := range []string{
		"/api/teams", "/api/players", "/api/referees", "/api/matches", "/api/awards",
	} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", w.Body.String(), path)
	}
}

package internal

import (
	"context"
	"math"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory Store with the same semantics as the mongo backend.
// Selected with STORE=memory; also backs the test suite.
type Memory struct {
	mu       sync.Mutex
	teams    []Team
	players  []Player
	referees []Referee
	matches  []Match
	awards   []Award
}

func NewMemory() *Memory {
	return &Memory{}
}

/* ===================== CRUD ===================== */

func (m *Memory) InsertTeam(_ context.Context, t Team) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = primitive.NewObjectID()
	m.teams = append(m.teams, t)
	return t.ID, nil
}

func (m *Memory) Teams(_ context.Context) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Team{}, m.teams...), nil
}

func (m *Memory) DeleteTeam(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams = deleteByID(m.teams, func(t Team) primitive.ObjectID { return t.ID }, id)
	return nil
}

func (m *Memory) DeletePlayersByTeam(_ context.Context, teamID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.players[:0]
	for _, p := range m.players {
		if p.TeamID == nil || *p.TeamID != teamID {
			kept = append(kept, p)
		}
	}
	m.players = kept
	return nil
}

func (m *Memory) IncTeamResult(_ context.Context, id primitive.ObjectID, wins, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.teams {
		if m.teams[i].ID == id {
			m.teams[i].Wins += wins
			m.teams[i].TotalScore += score
			return nil
		}
	}
	// matches mongo UpdateOne on a missing document: no-op, no error
	return nil
}

func (m *Memory) InsertPlayer(_ context.Context, p Player) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.players = append(m.players, p)
	return p.ID, nil
}

func (m *Memory) Players(_ context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Player{}, m.players...), nil
}

func (m *Memory) DeletePlayer(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = deleteByID(m.players, func(p Player) primitive.ObjectID { return p.ID }, id)
	return nil
}

func (m *Memory) InsertReferee(_ context.Context, r Referee) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	m.referees = append(m.referees, r)
	return r.ID, nil
}

func (m *Memory) Referees(_ context.Context) ([]Referee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Referee{}, m.referees...), nil
}

func (m *Memory) InsertMatch(_ context.Context, mt Match) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt.ID = primitive.NewObjectID()
	m.matches = append(m.matches, mt)
	return mt.ID, nil
}

func (m *Memory) Matches(_ context.Context) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Match{}, m.matches...), nil
}

func (m *Memory) DeleteMatch(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches = deleteByID(m.matches, func(mt Match) primitive.ObjectID { return mt.ID }, id)
	return nil
}

func (m *Memory) InsertAward(_ context.Context, a Award) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = primitive.NewObjectID()
	m.awards = append(m.awards, a)
	return a.ID, nil
}

func (m *Memory) Awards(_ context.Context) ([]Award, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Award{}, m.awards...), nil
}

func (m *Memory) DeleteAward(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.awards = deleteByID(m.awards, func(a Award) primitive.ObjectID { return a.ID }, id)
	return nil
}

func (m *Memory) DeleteAwardsByMatch(_ context.Context, matchID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.awards[:0]
	for _, a := range m.awards {
		if a.MatchID == nil || *a.MatchID != matchID {
			kept = append(kept, a)
		}
	}
	m.awards = kept
	return nil
}

func (m *Memory) DeleteAwardsByPlayer(_ context.Context, playerID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.awards[:0]
	for _, a := range m.awards {
		if a.PlayerID == nil || *a.PlayerID != playerID {
			kept = append(kept, a)
		}
	}
	m.awards = kept
	return nil
}

func deleteByID[T any](items []T, id func(T) primitive.ObjectID, target primitive.ObjectID) []T {
	kept := items[:0]
	for _, it := range items {
		if id(it) != target {
			kept = append(kept, it)
		}
	}
	return kept
}

/* ===================== REPORTS ===================== */

func (m *Memory) teamName(id primitive.ObjectID) *string {
	for _, t := range m.teams {
		if t.ID == id {
			name := t.TeamName
			return &name
		}
	}
	return nil
}

func (m *Memory) gamertag(id primitive.ObjectID) *string {
	for _, p := range m.players {
		if p.ID == id {
			tag := p.Gamertag
			return &tag
		}
	}
	return nil
}

func (m *Memory) TopKillers(_ context.Context) ([]TopKillerRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := append([]Player{}, m.players...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Kills > players[j].Kills })
	if len(players) > 5 {
		players = players[:5]
	}
	out := []TopKillerRow{}
	for _, p := range players {
		team := "Free Agent"
		if p.TeamID != nil {
			if name := m.teamName(*p.TeamID); name != nil {
				team = *name
			}
		}
		out = append(out, TopKillerRow{
			ID:       p.ID,
			Gamertag: p.Gamertag,
			GameName: p.GameName,
			Kills:    p.Kills,
			Assists:  p.Assists,
			Team:     team,
		})
	}
	return out, nil
}

func (m *Memory) Semifinals(_ context.Context) ([]SemifinalRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []SemifinalRow{}
	for _, mt := range m.matches {
		if mt.Round != "Semifinal" {
			continue
		}
		out = append(out, SemifinalRow{
			ID:    mt.ID,
			Round: mt.Round,
			TeamA: m.teamName(mt.TeamAID),
			TeamB: m.teamName(mt.TeamBID),
		})
	}
	return out, nil
}

func (m *Memory) ActiveReferees(_ context.Context) ([]Referee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Referee{}
	for _, r := range m.referees {
		if r.MatchesManaged > 10 {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) MultiGamePlayers(_ context.Context) ([]MultiGameRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	games := map[string]map[string]bool{}
	order := []string{}
	for _, p := range m.players {
		if _, ok := games[p.Gamertag]; !ok {
			games[p.Gamertag] = map[string]bool{}
			order = append(order, p.Gamertag)
		}
		games[p.Gamertag][p.GameName] = true
	}
	out := []MultiGameRow{}
	for _, tag := range order {
		if len(games[tag]) <= 1 {
			continue
		}
		set := []string{}
		for g := range games[tag] {
			set = append(set, g)
		}
		sort.Strings(set)
		out = append(out, MultiGameRow{Gamertag: tag, Games: set, GameCount: len(set)})
	}
	return out, nil
}

func (m *Memory) MatchMVPs(_ context.Context) ([]MVPRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []MVPRow{}
	for _, a := range m.awards {
		if a.Category != "MVP" {
			continue
		}
		var player *string
		if a.PlayerID != nil {
			player = m.gamertag(*a.PlayerID)
		}
		out = append(out, MVPRow{
			ID:      a.ID,
			Title:   a.Title,
			Player:  player,
			MatchID: a.MatchID,
		})
	}
	return out, nil
}

func (m *Memory) AvgTeamScores(_ context.Context) ([]AvgScoreRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sums := map[primitive.ObjectID]int{}
	counts := map[primitive.ObjectID]int{}
	order := []primitive.ObjectID{}
	for _, mt := range m.matches {
		if counts[mt.TeamAID] == 0 {
			order = append(order, mt.TeamAID)
		}
		sums[mt.TeamAID] += mt.ScoreA
		counts[mt.TeamAID]++
	}
	out := []AvgScoreRow{}
	for _, id := range order {
		avg := float64(sums[id]) / float64(counts[id])
		out = append(out, AvgScoreRow{
			TeamID:   id,
			Team:     m.teamName(id),
			AvgScore: math.Round(avg*10) / 10,
		})
	}
	return out, nil
}

func (m *Memory) DualWinners(_ context.Context) ([]DualWinnerRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	type group struct {
		playerID   *primitive.ObjectID
		categories map[string]bool
	}
	groups := map[primitive.ObjectID]*group{}
	order := []primitive.ObjectID{}
	var unassigned *group
	for _, a := range m.awards {
		if a.PlayerID == nil {
			if unassigned == nil {
				unassigned = &group{categories: map[string]bool{}}
			}
			unassigned.categories[a.Category] = true
			continue
		}
		g, ok := groups[*a.PlayerID]
		if !ok {
			g = &group{playerID: a.PlayerID, categories: map[string]bool{}}
			groups[*a.PlayerID] = g
			order = append(order, *a.PlayerID)
		}
		g.categories[a.Category] = true
	}

	all := []*group{}
	if unassigned != nil {
		all = append(all, unassigned)
	}
	for _, id := range order {
		all = append(all, groups[id])
	}

	out := []DualWinnerRow{}
	for _, g := range all {
		if !g.categories["MVP"] || !g.categories["Top Scorer"] {
			continue
		}
		cats := []string{}
		for cat := range g.categories {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		var tag *string
		if g.playerID != nil {
			tag = m.gamertag(*g.playerID)
		}
		out = append(out, DualWinnerRow{PlayerID: g.playerID, Gamertag: tag, Awards: cats})
	}
	return out, nil
}

func (m *Memory) DrawMatches(_ context.Context) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Match{}
	for _, mt := range m.matches {
		if mt.WinnerID == nil {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (m *Memory) ZeroWinTeams(_ context.Context) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Team{}
	for _, t := range m.teams {
		if t.Wins == 0 {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) TopTeams(_ context.Context) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	teams := append([]Team{}, m.teams...)
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].TotalScore > teams[j].TotalScore })
	if len(teams) > 3 {
		teams = teams[:3]
	}
	return teams, nil
}

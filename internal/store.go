package internal

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the handle handlers run against. Cascade deletes are sequenced by the
// handlers, not here: the store only exposes single-collection primitives.
type Store interface {
	InsertTeam(ctx context.Context, t Team) (primitive.ObjectID, error)
	Teams(ctx context.Context) ([]Team, error)
	DeleteTeam(ctx context.Context, id primitive.ObjectID) error
	DeletePlayersByTeam(ctx context.Context, teamID primitive.ObjectID) error
	IncTeamResult(ctx context.Context, id primitive.ObjectID, wins, score int) error

	InsertPlayer(ctx context.Context, p Player) (primitive.ObjectID, error)
	Players(ctx context.Context) ([]Player, error)
	DeletePlayer(ctx context.Context, id primitive.ObjectID) error

	InsertReferee(ctx context.Context, r Referee) (primitive.ObjectID, error)
	Referees(ctx context.Context) ([]Referee, error)

	InsertMatch(ctx context.Context, m Match) (primitive.ObjectID, error)
	Matches(ctx context.Context) ([]Match, error)
	DeleteMatch(ctx context.Context, id primitive.ObjectID) error

	InsertAward(ctx context.Context, a Award) (primitive.ObjectID, error)
	Awards(ctx context.Context) ([]Award, error)
	DeleteAward(ctx context.Context, id primitive.ObjectID) error
	DeleteAwardsByMatch(ctx context.Context, matchID primitive.ObjectID) error
	DeleteAwardsByPlayer(ctx context.Context, playerID primitive.ObjectID) error

	// Reports. Pure reads, no parameters.
	TopKillers(ctx context.Context) ([]TopKillerRow, error)
	Semifinals(ctx context.Context) ([]SemifinalRow, error)
	ActiveReferees(ctx context.Context) ([]Referee, error)
	MultiGamePlayers(ctx context.Context) ([]MultiGameRow, error)
	MatchMVPs(ctx context.Context) ([]MVPRow, error)
	AvgTeamScores(ctx context.Context) ([]AvgScoreRow, error)
	DualWinners(ctx context.Context) ([]DualWinnerRow, error)
	DrawMatches(ctx context.Context) ([]Match, error)
	ZeroWinTeams(ctx context.Context) ([]Team, error)
	TopTeams(ctx context.Context) ([]Team, error)
}

package internal

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The ten reporting queries. Each is a filtered find or an aggregation pipeline
// pushed down to the server; lookups that do not resolve leave the enrichment
// field null instead of dropping the row.

func lookupStage(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

// firstElem projects the first element of a lookup result array, or missing.
func firstElem(path string) bson.D {
	return bson.D{{Key: "$arrayElemAt", Value: bson.A{path, 0}}}
}

func aggAll[T any](ctx context.Context, c *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func topKillersPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "kills", Value: -1}}}},
		{{Key: "$limit", Value: 5}},
		lookupStage("teams", "teamId", "t"),
		{{Key: "$project", Value: bson.D{
			{Key: "gamertag", Value: 1},
			{Key: "gameName", Value: 1},
			{Key: "kills", Value: 1},
			{Key: "assists", Value: 1},
			{Key: "team", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				firstElem("$t.teamName"), "Free Agent",
			}}}},
		}}},
	}
}

func (db *DB) TopKillers(ctx context.Context) ([]TopKillerRow, error) {
	return aggAll[TopKillerRow](ctx, db.players, topKillersPipeline())
}

func semifinalsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "round", Value: "Semifinal"}}}},
		lookupStage("teams", "teamAId", "TeamA"),
		lookupStage("teams", "teamBId", "TeamB"),
		{{Key: "$project", Value: bson.D{
			{Key: "Round", Value: "$round"},
			{Key: "TeamA", Value: firstElem("$TeamA.teamName")},
			{Key: "TeamB", Value: firstElem("$TeamB.teamName")},
		}}},
	}
}

func (db *DB) Semifinals(ctx context.Context) ([]SemifinalRow, error) {
	return aggAll[SemifinalRow](ctx, db.matches, semifinalsPipeline())
}

func (db *DB) ActiveReferees(ctx context.Context) ([]Referee, error) {
	return findAll[Referee](ctx, db.referees, bson.M{"matchesManaged": bson.M{"$gt": 10}})
}

func multiGamePlayersPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$gamertag"},
			{Key: "games", Value: bson.D{{Key: "$addToSet", Value: "$gameName"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "games", Value: 1},
			{Key: "gameCount", Value: bson.D{{Key: "$size", Value: "$games"}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "gameCount", Value: bson.D{{Key: "$gt", Value: 1}}}}}},
	}
}

func (db *DB) MultiGamePlayers(ctx context.Context) ([]MultiGameRow, error) {
	return aggAll[MultiGameRow](ctx, db.players, multiGamePlayersPipeline())
}

func matchMVPsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "category", Value: "MVP"}}}},
		lookupStage("players", "playerId", "p"),
		{{Key: "$project", Value: bson.D{
			{Key: "Title", Value: "$title"},
			{Key: "Player", Value: firstElem("$p.gamertag")},
			{Key: "MatchID", Value: "$matchId"},
		}}},
	}
}

func (db *DB) MatchMVPs(ctx context.Context) ([]MVPRow, error) {
	return aggAll[MVPRow](ctx, db.awards, matchMVPsPipeline())
}

// avgTeamScorePipeline averages scoreA over a team's appearances as team A only.
func avgTeamScorePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$teamAId"},
			{Key: "avgScore", Value: bson.D{{Key: "$avg", Value: "$scoreA"}}},
		}}},
		lookupStage("teams", "_id", "t"),
		{{Key: "$project", Value: bson.D{
			{Key: "Team", Value: firstElem("$t.teamName")},
			{Key: "AvgScore", Value: bson.D{{Key: "$round", Value: bson.A{"$avgScore", 1}}}},
		}}},
	}
}

func (db *DB) AvgTeamScores(ctx context.Context) ([]AvgScoreRow, error) {
	return aggAll[AvgScoreRow](ctx, db.matches, avgTeamScorePipeline())
}

func dualWinnersPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$playerId"},
			{Key: "categories", Value: bson.D{{Key: "$addToSet", Value: "$category"}}},
		}}},
		{{Key: "$match", Value: bson.D{
			{Key: "categories", Value: bson.D{{Key: "$all", Value: bson.A{"MVP", "Top Scorer"}}}},
		}}},
		lookupStage("players", "_id", "p"),
		{{Key: "$project", Value: bson.D{
			{Key: "Gamertag", Value: firstElem("$p.gamertag")},
			{Key: "Awards", Value: "$categories"},
		}}},
	}
}

func (db *DB) DualWinners(ctx context.Context) ([]DualWinnerRow, error) {
	return aggAll[DualWinnerRow](ctx, db.awards, dualWinnersPipeline())
}

func (db *DB) DrawMatches(ctx context.Context) ([]Match, error) {
	return findAll[Match](ctx, db.matches, bson.M{"winnerId": nil})
}

func (db *DB) ZeroWinTeams(ctx context.Context) ([]Team, error) {
	return findAll[Team](ctx, db.teams, bson.M{"wins": 0})
}

func (db *DB) TopTeams(ctx context.Context) ([]Team, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "totalScore", Value: -1}}).
		SetLimit(3)
	return findAll[Team](ctx, db.teams, bson.M{}, opts)
}

package internal

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/* ===================== CONNECT ===================== */

// MustStore connects to MongoDB, retrying until a 30s deadline. The process
// does not begin serving without a reachable store.
func MustStore(cfg *Config) *DB {
	var client *mongo.Client
	var err error

	deadline := time.Now().Add(30 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			pingErr := client.Ping(ctx, nil)
			if pingErr == nil {
				cancel()
				break
			}
			_ = client.Disconnect(ctx)
			err = pingErr
		}
		cancel()

		if time.Now().After(deadline) {
			log.Fatal().Err(err).Msg("failed to connect to mongo after retries")
		}
		time.Sleep(1 * time.Second)
	}

	return NewDB(client.Database(cfg.DBName))
}

// DB is the MongoDB-backed Store.
type DB struct {
	teams    *mongo.Collection
	players  *mongo.Collection
	referees *mongo.Collection
	matches  *mongo.Collection
	awards   *mongo.Collection
}

func NewDB(db *mongo.Database) *DB {
	return &DB{
		teams:    db.Collection("teams"),
		players:  db.Collection("players"),
		referees: db.Collection("referees"),
		matches:  db.Collection("matches"),
		awards:   db.Collection("awards"),
	}
}

/* ===================== CRUD ===================== */

func insertOne(ctx context.Context, c *mongo.Collection, doc any) (primitive.ObjectID, error) {
	res, err := c.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) InsertTeam(ctx context.Context, t Team) (primitive.ObjectID, error) {
	return insertOne(ctx, db.teams, t)
}

func (db *DB) Teams(ctx context.Context) ([]Team, error) {
	return findAll[Team](ctx, db.teams, bson.M{})
}

func (db *DB) DeleteTeam(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.teams.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (db *DB) DeletePlayersByTeam(ctx context.Context, teamID primitive.ObjectID) error {
	_, err := db.players.DeleteMany(ctx, bson.M{"teamId": teamID})
	return err
}

func (db *DB) IncTeamResult(ctx context.Context, id primitive.ObjectID, wins, score int) error {
	_, err := db.teams.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"wins": wins, "totalScore": score}})
	return err
}

func (db *DB) InsertPlayer(ctx context.Context, p Player) (primitive.ObjectID, error) {
	return insertOne(ctx, db.players, p)
}

func (db *DB) Players(ctx context.Context) ([]Player, error) {
	return findAll[Player](ctx, db.players, bson.M{})
}

func (db *DB) DeletePlayer(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.players.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (db *DB) InsertReferee(ctx context.Context, r Referee) (primitive.ObjectID, error) {
	return insertOne(ctx, db.referees, r)
}

func (db *DB) Referees(ctx context.Context) ([]Referee, error) {
	return findAll[Referee](ctx, db.referees, bson.M{})
}

func (db *DB) InsertMatch(ctx context.Context, m Match) (primitive.ObjectID, error) {
	return insertOne(ctx, db.matches, m)
}

func (db *DB) Matches(ctx context.Context) ([]Match, error) {
	return findAll[Match](ctx, db.matches, bson.M{})
}

func (db *DB) DeleteMatch(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.matches.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (db *DB) InsertAward(ctx context.Context, a Award) (primitive.ObjectID, error) {
	return insertOne(ctx, db.awards, a)
}

func (db *DB) Awards(ctx context.Context) ([]Award, error) {
	return findAll[Award](ctx, db.awards, bson.M{})
}

func (db *DB) DeleteAward(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.awards.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (db *DB) DeleteAwardsByMatch(ctx context.Context, matchID primitive.ObjectID) error {
	_, err := db.awards.DeleteMany(ctx, bson.M{"matchId": matchID})
	return err
}

func (db *DB) DeleteAwardsByPlayer(ctx context.Context, playerID primitive.ObjectID) error {
	_, err := db.awards.DeleteMany(ctx, bson.M{"playerId": playerID})
	return err
}

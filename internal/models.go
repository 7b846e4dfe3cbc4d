package internal

import "go.mongodb.org/mongo-driver/bson/primitive"

type Team struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TeamName   string             `bson:"teamName" json:"teamName"`
	GameName   string             `bson:"gameName" json:"gameName"`
	Region     string             `bson:"region" json:"region"`
	Wins       int                `bson:"wins" json:"wins"`
	TotalScore int                `bson:"totalScore" json:"totalScore"`
}

type Player struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Gamertag string              `bson:"gamertag" json:"gamertag"`
	TeamID   *primitive.ObjectID `bson:"teamId" json:"teamId"` // nil = free agent
	GameName string              `bson:"gameName" json:"gameName"`
	Role     string              `bson:"role,omitempty" json:"role,omitempty"`
	Kills    int                 `bson:"kills" json:"kills"`
	Assists  int                 `bson:"assists" json:"assists"`
}

type Referee struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RefereeName    string             `bson:"refereeName" json:"refereeName"`
	GameName       string             `bson:"gameName,omitempty" json:"gameName,omitempty"`
	Experience     int                `bson:"experience" json:"experience"`
	MatchesManaged int                `bson:"matchesManaged" json:"matchesManaged"`
}

type Match struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	GameName  string              `bson:"gameName" json:"gameName"`
	Round     string              `bson:"round" json:"round"`
	TeamAID   primitive.ObjectID  `bson:"teamAId" json:"teamAId"`
	TeamBID   primitive.ObjectID  `bson:"teamBId" json:"teamBId"`
	ScoreA    int                 `bson:"scoreA" json:"scoreA"`
	ScoreB    int                 `bson:"scoreB" json:"scoreB"`
	WinnerID  *primitive.ObjectID `bson:"winnerId" json:"winnerId"` // nil = draw
	RefereeID *primitive.ObjectID `bson:"refereeId" json:"refereeId"`
}

type Award struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Title    string              `bson:"title" json:"title"`
	Category string              `bson:"category" json:"category"` // MVP | Top Scorer | Fair Play
	MatchID  *primitive.ObjectID `bson:"matchId" json:"matchId"`
	PlayerID *primitive.ObjectID `bson:"playerId" json:"playerId"`
}

/* ===================== REPORT ROWS ===================== */

type TopKillerRow struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Gamertag string             `bson:"gamertag" json:"gamertag"`
	GameName string             `bson:"gameName" json:"gameName"`
	Kills    int                `bson:"kills" json:"kills"`
	Assists  int                `bson:"assists" json:"assists"`
	Team     string             `bson:"team" json:"team"` // "Free Agent" when unresolved
}

type SemifinalRow struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Round string             `bson:"Round" json:"Round"`
	TeamA *string            `bson:"TeamA" json:"TeamA"`
	TeamB *string            `bson:"TeamB" json:"TeamB"`
}

type MultiGameRow struct {
	Gamertag  string   `bson:"_id" json:"_id"`
	Games     []string `bson:"games" json:"games"`
	GameCount int      `bson:"gameCount" json:"gameCount"`
}

type MVPRow struct {
	ID      primitive.ObjectID  `bson:"_id" json:"_id"`
	Title   string              `bson:"Title" json:"Title"`
	Player  *string             `bson:"Player" json:"Player"`
	MatchID *primitive.ObjectID `bson:"MatchID" json:"MatchID"`
}

type AvgScoreRow struct {
	TeamID   primitive.ObjectID `bson:"_id" json:"_id"`
	Team     *string            `bson:"Team" json:"Team"`
	AvgScore float64            `bson:"AvgScore" json:"AvgScore"`
}

type DualWinnerRow struct {
	PlayerID *primitive.ObjectID `bson:"_id" json:"_id"`
	Gamertag *string             `bson:"Gamertag" json:"Gamertag"`
	Awards   []string            `bson:"Awards" json:"Awards"`
}

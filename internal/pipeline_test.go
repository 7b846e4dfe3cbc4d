package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// The aggregation contracts are pinned as documents so a pipeline edit that
// changes limits, filters or grouping shows up here.

func stage(t *testing.T, p mongo.Pipeline, op string) any {
	t.Helper()
	for _, s := range p {
		if len(s) > 0 && s[0].Key == op {
			return s[0].Value
		}
	}
	t.Fatalf("pipeline has no %s stage", op)
	return nil
}

func TestTopKillersPipelineShape(t *testing.T) {
	p := topKillersPipeline()

	assert.Equal(t, 5, stage(t, p, "$limit"))
	assert.Equal(t, bson.D{{Key: "kills", Value: -1}}, stage(t, p, "$sort"))

	lookup := stage(t, p, "$lookup").(bson.D)
	assert.Contains(t, lookup, bson.E{Key: "from", Value: "teams"})
	assert.Contains(t, lookup, bson.E{Key: "localField", Value: "teamId"})
}

func TestSemifinalsPipelineShape(t *testing.T) {
	p := semifinalsPipeline()

	assert.Equal(t, bson.D{{Key: "round", Value: "Semifinal"}}, stage(t, p, "$match"))

	lookups := 0
	for _, s := range p {
		if len(s) > 0 && s[0].Key == "$lookup" {
			lookups++
		}
	}
	assert.Equal(t, 2, lookups)
}

func TestMultiGamePlayersPipelineShape(t *testing.T) {
	p := multiGamePlayersPipeline()

	group := stage(t, p, "$group").(bson.D)
	assert.Contains(t, group, bson.E{Key: "_id", Value: "$gamertag"})

	// the filter runs on distinct game count, not record count
	match := stage(t, p, "$match").(bson.D)
	require.Len(t, match, 1)
	assert.Equal(t, "gameCount", match[0].Key)
	assert.Equal(t, bson.D{{Key: "$gt", Value: 1}}, match[0].Value)
}

func TestDualWinnersPipelineShape(t *testing.T) {
	p := dualWinnersPipeline()

	match := stage(t, p, "$match").(bson.D)
	require.Len(t, match, 1)
	assert.Equal(t, "categories", match[0].Key)
	assert.Equal(t, bson.D{{Key: "$all", Value: bson.A{"MVP", "Top Scorer"}}}, match[0].Value)
}

func TestAvgTeamScorePipelineShape(t *testing.T) {
	p := avgTeamScorePipeline()

	group := stage(t, p, "$group").(bson.D)
	assert.Contains(t, group, bson.E{Key: "_id", Value: "$teamAId"})

	project := stage(t, p, "$project").(bson.D)
	var rounded bool
	for _, e := range project {
		if e.Key == "AvgScore" {
			assert.Equal(t, bson.D{{Key: "$round", Value: bson.A{"$avgScore", 1}}}, e.Value)
			rounded = true
		}
	}
	assert.True(t, rounded, "AvgScore must round to 1 decimal")
}

func TestMatchMVPsPipelineShape(t *testing.T) {
	p := matchMVPsPipeline()

	assert.Equal(t, bson.D{{Key: "category", Value: "MVP"}}, stage(t, p, "$match"))

	// no $unwind: a dangling player reference must not drop the award row
	for _, s := range p {
		if len(s) > 0 {
			assert.NotEqual(t, "$unwind", s[0].Key)
		}
	}
}

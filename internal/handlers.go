package internal

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store calls run on a background context: a client disconnect does not abort
// an in-flight store operation.

// ------------------- Teams -------------------

func CreateTeam(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TeamName string `json:"teamName"`
			GameName string `json:"gameName"`
			Region   string `json:"region"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		id, err := s.InsertTeam(context.Background(), Team{
			TeamName: req.TeamName,
			GameName: req.GameName,
			Region:   req.Region,
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"id": id.Hex()})
	}
}

func ListTeams(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.Teams(context.Background())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, out)
	}
}

// DeleteTeam removes the team, then its players. The cascade is a separate
// step: if it fails after the team delete succeeded, the players are orphaned.
func DeleteTeam(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx := context.Background()
		if err := s.DeleteTeam(ctx, id); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := s.DeletePlayersByTeam(ctx, id); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "deleted"})
	}
}

// ------------------- Players -------------------

func CreatePlayer(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Gamertag string `json:"gamertag"`
			TeamID   any    `json:"teamId"`
			GameName string `json:"gameName"`
			Role     string `json:"role"`
			Kills    any    `json:"kills"`
			Assists  any    `json:"assists"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		teamID, err := optionalObjectID(req.TeamID)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		_, err = s.InsertPlayer(context.Background(), Player{
			Gamertag: req.Gamertag,
			TeamID:   teamID,
			GameName: req.GameName,
			Role:     req.Role,
			Kills:    asInt(req.Kills),
			Assists:  asInt(req.Assists),
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	}
}

func ListPlayers(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.Players(context.Background())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, out)
	}
}

func DeletePlayer(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx := context.Background()
		if err := s.DeletePlayer(ctx, id); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := s.DeleteAwardsByPlayer(ctx, id); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "deleted"})
	}
}

// ------------------- Referees -------------------

func CreateReferee(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefereeName    string `json:"refereeName"`
			GameName       string `json:"gameName"`
			Experience     any    `json:"experience"`
			MatchesManaged any    `json:"matchesManaged"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		// experience rejects bad input, matchesManaged falls back to 0
		exp, err := parseInt(req.Experience)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		_, err = s.InsertReferee(context.Background(), Referee{
			RefereeName:    req.RefereeName,
			GameName:       req.GameName,
			Experience:     exp,
			MatchesManaged: asInt(req.MatchesManaged),
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	}
}

func ListReferees(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.Referees(context.Background())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, out)
	}
}

// ------------------- Matches -------------------

// CreateMatch inserts the match; when a winner is designated the winner's
// counters are bumped afterwards as a fire-and-forget step with no rollback.
func CreateMatch(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			GameName  string `json:"gameName"`
			Round     string `json:"round"`
			TeamAID   any    `json:"teamAId"`
			TeamBID   any    `json:"teamBId"`
			ScoreA    any    `json:"scoreA"`
			ScoreB    any    `json:"scoreB"`
			WinnerID  any    `json:"winnerId"`
			RefereeID any    `json:"refereeId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		teamAID, err := objectID(req.TeamAID)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		teamBID, err := objectID(req.TeamBID)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		winnerID, err := optionalObjectID(req.WinnerID)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		refereeID, err := optionalObjectID(req.RefereeID)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		ctx := context.Background()
		_, err = s.InsertMatch(ctx, Match{
			GameName:  req.GameName,
			Round:     req.Round,
			TeamAID:   teamAID,
			TeamBID:   teamBID,
			ScoreA:    asInt(req.ScoreA),
			ScoreB:    asInt(req.ScoreB),
			WinnerID:  winnerID,
			RefereeID: refereeID,
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		if winnerID != nil {
			if err := s.IncTeamResult(ctx, *winnerID, 1, 3); err != nil {
				log.Warn().Err(err).Str("teamId", winnerID.Hex()).Msg("winner counter bump failed")
			}
		}
		c.JSON(200, gin.H{"status": "ok"})
	}
}

func ListMatches(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.Matches(context.Background())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, out)
	}
}

func DeleteMatch(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx := context.Background()
		if err := s.DeleteMatch(ctx, id); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := s.DeleteAwardsByMatch(ctx, id); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "deleted"})
	}
}

// ------------------- Awards -------------------

func CreateAward(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title    string `json:"title"`
			Category string `json:"category"`
			MatchID  any    `json:"matchId"`
			PlayerID any    `json:"playerId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		matchID, err := optionalObjectID(req.MatchID)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		playerID, err := optionalObjectID(req.PlayerID)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		_, err = s.InsertAward(context.Background(), Award{
			Title:    req.Title,
			Category: req.Category,
			MatchID:  matchID,
			PlayerID: playerID,
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	}
}

func ListAwards(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.Awards(context.Background())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, out)
	}
}

func DeleteAward(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		if err := s.DeleteAward(context.Background(), id); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "deleted"})
	}
}

// ------------------- Reports -------------------

// Report serves one of the fixed read queries as a JSON array.
func Report[T any](fn func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := fn(context.Background())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, out)
	}
}

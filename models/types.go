package models

import "time"

// Judge roles
const (
	RoleExecution  Role = "execution"
	RoleArtistry   Role = "artistry"
	RoleDifficulty Role = "difficulty"
	RolePrincipal  Role = "principal"
)

// Score types
const (
	ScoreExecution              ScoreType = "execution"
	ScoreArtistry               ScoreType = "artistry"
	ScoreDifficulty             ScoreType = "difficulty"
	ScoreDifficultyPenalization ScoreType = "difficulty_penalization"
	ScoreLinePenalization       ScoreType = "line_penalization"
	ScorePrincipalPenalization  ScoreType = "principal_penalization"
)

// Member sexes
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Mark bounds
const (
	MinMark = 0.0
	MaxMark = 10.0
)

type Role string

// Valid reports whether r is one of the known judge roles.
func (r Role) Valid() bool {
	switch r {
	case RoleExecution, RoleArtistry, RoleDifficulty, RolePrincipal:
		return true
	}
	return false
}

// ScoreTypes returns the score types a judge with this role may write.
func (r Role) ScoreTypes() []ScoreType {
	switch r {
	case RoleExecution:
		return []ScoreType{ScoreExecution}
	case RoleArtistry:
		return []ScoreType{ScoreArtistry}
	case RoleDifficulty:
		return []ScoreType{ScoreDifficulty, ScoreDifficultyPenalization}
	case RolePrincipal:
		return []ScoreType{ScoreLinePenalization, ScorePrincipalPenalization}
	}
	return nil
}

// Allows reports whether r may submit marks of type t.
func (r Role) Allows(t ScoreType) bool {
	for _, allowed := range r.ScoreTypes() {
		if allowed == t {
			return true
		}
	}
	return false
}

type ScoreType string

// AllScoreTypes lists every score type in display order.
var AllScoreTypes = []ScoreType{
	ScoreExecution,
	ScoreArtistry,
	ScoreDifficulty,
	ScoreDifficultyPenalization,
	ScoreLinePenalization,
	ScorePrincipalPenalization,
}

func (t ScoreType) Valid() bool {
	for _, known := range AllScoreTypes {
		if known == t {
			return true
		}
	}
	return false
}

// Mirrored reports whether marks of this type are copied across the
// whole difficulty panel.
func (t ScoreType) Mirrored() bool {
	return t == ScoreDifficulty || t == ScoreDifficultyPenalization
}

// Domain types

type Judge struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

type Member struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Sex  string `json:"sex"`
}

type Competitor struct {
	ID          int64      `json:"id"`
	Category    string     `json:"category"`
	Club        string     `json:"club"`
	Members     []Member   `json:"members"`
	Validated   bool       `json:"validated"`
	FrozenTotal *float64   `json:"frozen_total,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

// Sexes returns the sex of every member in roster order.
func (c Competitor) Sexes() []string {
	sexes := make([]string, len(c.Members))
	for i, m := range c.Members {
		sexes[i] = m.Sex
	}
	return sexes
}

type ScoreRecord struct {
	JudgeID      int64     `json:"judge_id"`
	CompetitorID int64     `json:"competitor_id"`
	ScoreType    ScoreType `json:"score_type"`
	Value        float64   `json:"value"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VoteSession is the live-voting view for one (optional) judge.
type VoteSession struct {
	CompetitorID *int64      `json:"competitor_id"`
	AlreadyVoted bool        `json:"already_voted"`
	Competitor   *Competitor `json:"competitor,omitempty"`
}

// Active reports whether a competitor is open for voting.
func (s VoteSession) Active() bool {
	return s.CompetitorID != nil
}

// Aggregation result types

type Section struct {
	Value      float64   `json:"value"`
	Marks      []float64 `json:"marks"`
	Discrepant bool      `json:"discrepant"`
	Incomplete bool      `json:"incomplete,omitempty"`
}

type Breakdown struct {
	Execution              Section `json:"execution"`
	Artistry               Section `json:"artistry"`
	Difficulty             Section `json:"difficulty"`
	DifficultyPenalization Section `json:"difficulty_penalization"`
	LinePenalization       float64 `json:"line_penalization"`
	PrincipalPenalization  float64 `json:"principal_penalization"`
	Divisor                float64 `json:"divisor"`
	Total                  float64 `json:"total"`
	Preview                bool    `json:"preview,omitempty"`
}

type RankingEntry struct {
	Position     int     `json:"position"`
	Place        string  `json:"place"`
	CompetitorID int64   `json:"competitor_id"`
	Club         string  `json:"club"`
	Score        float64 `json:"score"`
}

// Rankings maps a category to its ordered standings.
type Rankings map[string][]RankingEntry

// Listing types

type JudgeScore struct {
	CompetitorID int64     `json:"competitor_id"`
	Category     string    `json:"category"`
	Club         string    `json:"club"`
	ScoreType    ScoreType `json:"score_type"`
	Value        float64   `json:"value"`
	Members      []Member  `json:"members"`
}

type ScoreListing struct {
	CompetitorID int64     `json:"competitor_id"`
	Category     string    `json:"category"`
	Club         string    `json:"club"`
	ScoreType    ScoreType `json:"score_type"`
	Value        float64   `json:"value"`
	JudgeID      int64     `json:"judge_id"`
	JudgeName    string    `json:"judge_name"`
	JudgeRole    Role      `json:"judge_role"`
}

// CompetitorScores is the labelled view of every mark for one competitor.
type CompetitorScores struct {
	CompetitorID int64              `json:"competitor_id"`
	Scores       map[string]float64 `json:"scores"`
	JudgeIDs     map[string]int64   `json:"judge_ids"`
	Validated    bool               `json:"validated"`
	FrozenTotal  *float64           `json:"frozen_total,omitempty"`
	Breakdown    *Breakdown         `json:"breakdown,omitempty"`
}

type CompetitorWithScores struct {
	Competitor
	Scores    map[string]float64 `json:"scores"`
	Breakdown *Breakdown         `json:"breakdown,omitempty"`
}

// Request types

type SubmitScoreRequest struct {
	JudgeID      int64     `json:"judge_id"`
	CompetitorID int64     `json:"competitor_id"`
	ScoreType    ScoreType `json:"score_type"`
	Value        *float64  `json:"value"`
}

type DeleteScoreRequest struct {
	JudgeID      int64     `json:"judge_id"`
	CompetitorID int64     `json:"competitor_id"`
	ScoreType    ScoreType `json:"score_type"`
}

// label -> value; "N/A", "" and null entries are skipped
type UpdateScoresRequest struct {
	Scores map[string]interface{} `json:"scores"`
}

type StartVoteRequest struct {
	CompetitorID int64 `json:"competitor_id"`
}

// Response types

type ValidateResponse struct {
	CompetitorID int64     `json:"competitor_id"`
	FrozenTotal  float64   `json:"frozen_total"`
	Breakdown    Breakdown `json:"breakdown"`
	Message      string    `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type UpdateScoresResponse struct {
	Success bool `json:"success"`
	Updated int  `json:"updated"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

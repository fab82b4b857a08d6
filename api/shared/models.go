/* models.go
 * This file contain the structs that are shared between sub packages and api consumers
 * Authors: Zachary Bower
 */

package shared

// CprSessionInput holds the fields a client sends when saving a CPR session. Pointer fields are
// optional; CprRate in particular is allowed to be null and is stored as 0.
type CprSessionInput struct {
	CprRate         *float64                 `json:"cprRate"`
	CprFraction     float64                  `json:"cprFraction"`
	Compression     float64                  `json:"compression"`
	TotalTime       float64                  `json:"totalTime"`
	Breaths         *int                     `json:"breaths"`
	Feedback        bool                     `json:"feedback"`
	CompressionOnly bool                     `json:"compOnly"`
	Reps            []map[string]interface{} `json:"reps"`
}

// GameResultInput holds the fields a client sends when saving a game score
type GameResultInput struct {
	GameName  string  `json:"gameName"`
	GameScore float64 `json:"gameScore"`
}

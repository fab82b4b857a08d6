/* models.go
 * This file contain the structs that relate to DB objects. Field names in the bson tags match the documents the
 * provisioning service writes (cprDetails, gameDetails, compOnly) so both services can share a database
 * Authors: Zachary Bower
 */

package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer groups a set of user ids. UserIDs only ever grows
type Trainer struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TrainerID string             `bson:"trainerId" json:"trainerId"`
	Name      string             `bson:"name" json:"name"`
	UserIDs   []string           `bson:"userIds" json:"userIds"`
}

// UserRecord is the per user document holding their CPR and game history
type UserRecord struct {
	Id          primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID      string              `bson:"userId" json:"userId"`
	CprSessions []CprSession        `bson:"cprDetails" json:"cprDetails"`
	GameResults []GameResult        `bson:"gameDetails" json:"gameDetails"`
	TrainerRef  *primitive.ObjectID `bson:"trainer,omitempty" json:"trainer,omitempty"`
}

// CprSession is one recorded CPR attempt. Entries are appended and never modified
type CprSession struct {
	Id              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CprRate         float64            `bson:"cprRate" json:"cprRate"`
	CprFraction     float64            `bson:"cprFraction" json:"cprFraction"`
	Compression     float64            `bson:"compression" json:"compression"`
	TotalTime       float64            `bson:"totalTime" json:"totalTime"`
	Breaths         *int               `bson:"breaths,omitempty" json:"breaths,omitempty"`
	Feedback        bool               `bson:"feedback" json:"feedback"`
	CompressionOnly bool               `bson:"compOnly" json:"compOnly"`
	Reps            []bson.M           `bson:"reps" json:"reps"` // stored verbatim, never interpreted
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// GameResult is one recorded game score. Entries are appended and never modified
type GameResult struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	GameName  string             `bson:"gameName" json:"gameName"`
	GameScore float64            `bson:"gameScore" json:"gameScore"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// TopScore pairs a user with one of their game results. Produced by the top scores aggregation
type TopScore struct {
	UserID   string     `bson:"userId" json:"userId"`
	TopScore GameResult `bson:"topScore" json:"topScore"`
}

// NewUserRecord returns an empty record for userID. Slices are non-nil so they are stored as [] rather than null
func NewUserRecord(userID string) UserRecord {
	return UserRecord{
		UserID:      userID,
		CprSessions: []CprSession{},
		GameResults: []GameResult{},
	}
}

// NewTrainer returns a trainer with no users
func NewTrainer(trainerID string, name string) Trainer {
	return Trainer{
		TrainerID: trainerID,
		Name:      name,
		UserIDs:   []string{},
	}
}

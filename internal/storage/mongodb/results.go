package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/monoare/vigor-vista-server/internal/models"
)

func insertResult(res *mongo.InsertOneResult) *models.InsertResult {
	return &models.InsertResult{
		Acknowledged: true,
		InsertedID:   res.InsertedID,
	}
}

func updateResult(res *mongo.UpdateResult) *models.UpdateResult {
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func deleteResult(res *mongo.DeleteResult) *models.DeleteResult {
	return &models.DeleteResult{
		Acknowledged: true,
		DeletedCount: res.DeletedCount,
	}
}

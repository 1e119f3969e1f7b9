package validators

import (
	"studio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"email",
			"phone",
			"session_type",
			"event_date",
			"event_details",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 255,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"session_type": bson.M{
				"bsonType": "string",
				"enum":     model.SessionTypes,
			},

			"event_date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"event_details": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 5000,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					model.StatusPending,
					model.StatusConfirmed,
					model.StatusCancelled,
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

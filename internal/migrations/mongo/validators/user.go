package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"name",
			"role",
			"approved",
			"password_hash",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  `^\+[1-9]\d{1,14}$`,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum":     []string{"client", "agent", "admin"},
			},

			"approved": bson.M{
				"bsonType": "bool",
			},

			"password_hash": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
		},
	},
}

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"user_id", "event_id", "kind", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"user_id":    bson.M{"bsonType": "string", "minLength": 1},
			"event_id":   bson.M{"bsonType": "string", "minLength": 1},
			"kind":       bson.M{"bsonType": "string"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

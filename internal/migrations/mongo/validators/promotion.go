package validators

import "go.mongodb.org/mongo-driver/bson"

var PromotionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"title", "discount", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},
			"discount": bson.M{
				"bsonType": []string{"long", "int"},
				"minimum":  0,
				"maximum":  100,
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

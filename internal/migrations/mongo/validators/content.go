package validators

import "go.mongodb.org/mongo-driver/bson"

var CompanyDetailsValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"logo_name", "header", "email", "phone_number", "location"},
		"properties": bson.M{
			"logo_name":        bson.M{"bsonType": "string", "minLength": 1},
			"header":           bson.M{"bsonType": "string"},
			"about_us_details": bson.M{"bsonType": "string"},
			"email":            bson.M{"bsonType": "string", "minLength": 3},
			"phone_number":     bson.M{"bsonType": "string"},
			"location":         bson.M{"bsonType": "string"},
			"fb_link":          bson.M{"bsonType": []string{"string", "null"}},
			"insta_link":       bson.M{"bsonType": []string{"string", "null"}},
			"tiktok_link":      bson.M{"bsonType": []string{"string", "null"}},
		},
	},
}

var PortfolioCategoryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "is_featured_in_home_page"},
		"properties": bson.M{
			"_id":                      bson.M{"bsonType": "long", "minimum": 1},
			"name":                     bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"is_featured_in_home_page": bson.M{"bsonType": "bool"},
		},
	},
}

var PortfolioItemValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "category", "file", "file_type", "priority", "is_featured_in_home_page", "created_at"},
		"properties": bson.M{
			"_id": bson.M{"bsonType": "long", "minimum": 1},
			"category": bson.M{
				"bsonType": "object",
				"required": []string{"_id", "name"},
			},
			"file":                     bson.M{"bsonType": "string", "minLength": 1},
			"file_type":                bson.M{"bsonType": "string", "enum": []string{"image", "video"}},
			"priority":                 bson.M{"bsonType": []string{"int", "long"}},
			"is_featured_in_home_page": bson.M{"bsonType": "bool"},
			"created_at":               bson.M{"bsonType": "date"},
		},
	},
}

var ServiceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "description", "starting_price", "priority", "is_featured", "created_at"},
		"properties": bson.M{
			"_id":            bson.M{"bsonType": "long", "minimum": 1},
			"name":           bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"description":    bson.M{"bsonType": "string"},
			"starting_price": bson.M{"bsonType": "string"},
			"priority":       bson.M{"bsonType": []string{"int", "long"}},
			"is_featured":    bson.M{"bsonType": "bool"},
			"created_at":     bson.M{"bsonType": "date"},
		},
	},
}

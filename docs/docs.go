// Package docs is the swagger description of the engagement survey API
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Liveness check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/v1/study": {
			"get": {
				"tags": [
					"study"
				],
				"summary": "Study description and rating scale",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.StudyInfo"
						}
					}
				}
			}
		},
		"/v1/sessions": {
			"post": {
				"tags": [
					"sessions"
				],
				"summary": "Start a survey",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/model.StartSessionResponse"
						}
					},
					"503": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"parameters": [
					{
						"description": "Optional participant details",
						"name": "body",
						"in": "body",
						"schema": {
							"$ref": "#/definitions/model.Participant"
						}
					}
				]
			}
		},
		"/v1/sessions/{id}": {
			"get": {
				"tags": [
					"sessions"
				],
				"summary": "Current survey step",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.SessionView"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"sessions"
				],
				"summary": "Abandon the survey",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.SessionView"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/sessions/{id}/rating": {
			"put": {
				"tags": [
					"sessions"
				],
				"summary": "Rate a face",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.SessionView"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Rating",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.RateRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/sessions/{id}/next": {
			"post": {
				"tags": [
					"sessions"
				],
				"summary": "Go to the next face",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.MoveResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/sessions/{id}/prev": {
			"post": {
				"tags": [
					"sessions"
				],
				"summary": "Go to the previous face",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.MoveResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/sessions/{id}/submit": {
			"post": {
				"tags": [
					"sessions"
				],
				"summary": "Submit the survey",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.SubmitResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"502": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/admin/login": {
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Admin login",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.LoginResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"parameters": [
					{
						"description": "Password",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.LoginRequest"
						}
					}
				]
			}
		},
		"/v1/admin/responses": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "List stored responses",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.SurveyResponse"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/admin/responses/export": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "Download responses as the dataset CSV",
				"produces": [
					"text/csv"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/admin/responses/{id}": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "Get one stored response",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Response ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.SurveyResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/admin/stats": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "Content coverage statistics",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.ResponseStats"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/admin/participants/count": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "Number of surveys submitted by an email",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Participant email",
						"name": "email",
						"in": "query",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		}
	},
	"definitions": {
		"handler.StudyInfo": {
			"type": "object",
			"properties": {
				"batchSize": {
					"type": "integer"
				},
				"ratings": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.RatingOption"
					}
				},
				"guidance": {
					"type": "string"
				}
			}
		},
		"handler.RateRequest": {
			"type": "object",
			"required": [
				"value"
			],
			"properties": {
				"value": {
					"type": "string"
				},
				"path": {
					"type": "string"
				}
			}
		},
		"handler.MoveResponse": {
			"type": "object",
			"properties": {
				"moved": {
					"type": "boolean"
				},
				"session": {
					"$ref": "#/definitions/model.SessionView"
				}
			}
		},
		"handler.SubmitResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"responseId": {
					"type": "string"
				},
				"answers": {
					"type": "integer"
				},
				"duration": {
					"type": "number"
				}
			}
		},
		"model.RatingOption": {
			"type": "object",
			"properties": {
				"value": {
					"type": "string"
				},
				"caption": {
					"type": "string"
				}
			}
		},
		"model.Demographics": {
			"type": "object",
			"properties": {
				"gender": {
					"type": "string"
				},
				"ageRange": {
					"type": "string"
				},
				"education": {
					"type": "string"
				},
				"profession": {
					"type": "string"
				}
			}
		},
		"model.Participant": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"demographics": {
					"$ref": "#/definitions/model.Demographics"
				}
			}
		},
		"model.FaceInfo": {
			"type": "object",
			"properties": {
				"face": {
					"type": "string"
				},
				"x1": {
					"type": "string"
				},
				"y1": {
					"type": "string"
				},
				"x2": {
					"type": "string"
				},
				"y2": {
					"type": "string"
				}
			}
		},
		"model.ItemView": {
			"type": "object",
			"properties": {
				"path": {
					"type": "string"
				},
				"folder": {
					"type": "string"
				},
				"label": {
					"type": "string"
				},
				"face": {
					"$ref": "#/definitions/model.FaceInfo"
				},
				"faceUrl": {
					"type": "string"
				},
				"contextUrl": {
					"type": "string"
				},
				"selected": {
					"type": "string"
				},
				"folderIndex": {
					"type": "integer"
				}
			}
		},
		"model.SessionView": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"state": {
					"type": "string"
				},
				"position": {
					"type": "integer"
				},
				"total": {
					"type": "integer"
				},
				"answered": {
					"type": "integer"
				},
				"item": {
					"$ref": "#/definitions/model.ItemView"
				},
				"options": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.RatingOption"
					}
				},
				"canAdvance": {
					"type": "boolean"
				},
				"canRetreat": {
					"type": "boolean"
				},
				"canSubmit": {
					"type": "boolean"
				}
			}
		},
		"model.StartSessionResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"session": {
					"$ref": "#/definitions/model.SessionView"
				}
			}
		},
		"model.LoginRequest": {
			"type": "object",
			"required": [
				"password"
			],
			"properties": {
				"password": {
					"type": "string"
				}
			}
		},
		"model.LoginResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"adminId": {
					"type": "string"
				}
			}
		},
		"model.FaceRating": {
			"type": "object",
			"properties": {
				"path": {
					"type": "string"
				},
				"folder": {
					"type": "string"
				},
				"page": {
					"type": "string"
				},
				"face": {
					"type": "string"
				},
				"value": {
					"type": "string"
				}
			}
		},
		"model.SurveyResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"demographics": {
					"$ref": "#/definitions/model.Demographics"
				},
				"timestamp": {
					"type": "string"
				},
				"answers": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.FaceRating"
					}
				},
				"folders": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"duration": {
					"type": "number"
				}
			}
		},
		"model.ResponseStats": {
			"type": "object",
			"properties": {
				"responses": {
					"type": "integer"
				},
				"totalFolders": {
					"type": "integer"
				},
				"answeredFolders": {
					"type": "integer"
				},
				"remainingFolders": {
					"type": "integer"
				},
				"pageResponses": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Engagement Survey API",
	Description:      "Classroom engagement rating survey: participants rate sampled face images, researchers export the results.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the OpenAPI document for the evtariff HTTP API.
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
        "/api/comparison": {
            "get": {
                "description": "Every tariff with its estimated annual cost, cheapest first",
                "produces": ["application/json"],
                "tags": ["tariffs"],
                "summary": "Compare tariffs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/tariff.TariffWithCost"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/debug": {
            "get": {
                "description": "Writes and reads back a test key to verify the storage backend",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Storage diagnostics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.debugResponse"}}
                }
            }
        },
        "/api/preferences": {
            "get": {
                "produces": ["application/json"],
                "tags": ["household"],
                "summary": "Get view preferences",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tariff.Preferences"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["household"],
                "summary": "Replace view preferences",
                "parameters": [{"description": "Preferences", "name": "preferences", "in": "body", "required": true, "schema": {"$ref": "#/definitions/tariff.Preferences"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.successResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/tariffs": {
            "get": {
                "description": "Returns the stored tariffs, initializing the defaults on first use",
                "produces": ["application/json"],
                "tags": ["tariffs"],
                "summary": "List tariffs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/tariff.Tariff"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tariffs"],
                "summary": "Replace all tariffs",
                "parameters": [{"description": "Tariffs", "name": "tariffs", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/tariff.Tariff"}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.successResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/tariffs/new": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tariffs"],
                "summary": "Add a tariff",
                "parameters": [{"description": "Tariff", "name": "tariff", "in": "body", "required": true, "schema": {"$ref": "#/definitions/tariff.Tariff"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/tariff.Tariff"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/tariffs/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tariffs"],
                "summary": "Update a tariff",
                "parameters": [
                    {"type": "string", "description": "Tariff ID", "name": "id", "in": "path", "required": true},
                    {"description": "Tariff", "name": "tariff", "in": "body", "required": true, "schema": {"$ref": "#/definitions/tariff.Tariff"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tariff.Tariff"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["tariffs"],
                "summary": "Delete a tariff",
                "parameters": [{"type": "string", "description": "Tariff ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/tariffs/{id}/charging": {
            "get": {
                "description": "Per-scenario cost and duration for charging the configured vehicle; use id \"selected\" for the preferred tariff",
                "produces": ["application/json"],
                "tags": ["charging"],
                "summary": "EV charging estimates",
                "parameters": [{"type": "string", "description": "Tariff ID or \"selected\"", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tariff.ChargingEstimates"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/usage-assumptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["household"],
                "summary": "Get usage assumptions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tariff.UsageAssumptions"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["household"],
                "summary": "Replace usage assumptions",
                "parameters": [{"description": "Usage", "name": "usage", "in": "body", "required": true, "schema": {"$ref": "#/definitions/tariff.UsageAssumptions"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.successResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.debugResponse": {
            "type": "object",
            "properties": {
                "storage": {"$ref": "#/definitions/api.storageStatus"}
            }
        },
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "api.storageStatus": {
            "type": "object",
            "properties": {
                "driver": {"type": "string"},
                "connected": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "api.successResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "tariff.ChargingEstimates": {
            "type": "object",
            "properties": {
                "tariffId": {"type": "string"},
                "tariffName": {"type": "string"},
                "rateLabel": {"type": "string"},
                "rate": {"type": "number"},
                "evOffPeakPercentage": {"type": "number"},
                "scenarios": {"type": "array", "items": {"type": "object"}}
            }
        },
        "tariff.Preferences": {
            "type": "object",
            "properties": {
                "selectedTariffForView": {"type": "string"},
                "activeTab": {"type": "string"}
            }
        },
        "tariff.Tariff": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "unitRate": {"type": "number"},
                "evRate": {"type": "number"},
                "standingCharge": {"type": "number"},
                "tariffType": {"type": "string", "enum": ["Variable", "Fixed"]},
                "fixedTerm": {"type": "string"},
                "offPeakStart": {"type": "string"},
                "offPeakEnd": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "tariff.TariffWithCost": {
            "allOf": [
                {"$ref": "#/definitions/tariff.Tariff"},
                {"type": "object", "properties": {"annualCost": {"type": "number"}}}
            ]
        },
        "tariff.UsageAssumptions": {
            "type": "object",
            "properties": {
                "householdUsage": {"type": "number"},
                "evUsage": {"type": "number"},
                "evOffPeakPercentage": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "evtariff API",
	Description:      "Electricity tariff comparison and EV charging cost estimates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

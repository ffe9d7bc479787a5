// Package docs holds the OpenAPI document served at /swagger. The template
// is maintained by hand alongside the handler annotations.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new member",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/groups": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Create a new group",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/groups/nearby": {
            "get": {
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "List groups near a coordinate",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/groups/{groupId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Get group detail",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "410": {"description": "Gone"}
                }
            }
        },
        "/groups/{groupId}/comments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Add a comment",
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found"},
                    "410": {"description": "Gone"}
                }
            }
        },
        "/groups/{groupId}/enroll": {
            "post": {
                "produces": ["application/json"],
                "tags": ["enrollments"],
                "summary": "Enroll in a group",
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"},
                    "410": {"description": "Gone"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Foodmate API",
	Description:      "Time-bounded food meetup groups with bounded-capacity enrollment",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

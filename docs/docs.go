// Package docs registers the Swagger document served at /docs. It mirrors the
// godoc annotations on the controllers and is kept in sync with them by hand.
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
        "/blogs/": {
            "get": {
                "description": "All posts with embedded comments, oldest first. With expand=names\neach post carries authorName and each comment userName (dto.BlogPostView).",
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "List blog posts",
                "parameters": [
                    {"type": "string", "description": "names", "name": "expand", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.BlogPost"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Create a blog post",
                "parameters": [
                    {"description": "New post", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBlogReq"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.BlogPost"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "invalid bearer token", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/blogs/like/{id}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Like a blog post",
                "parameters": [
                    {"type": "string", "description": "Blog post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BlogPost"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/blogs/{id}/comment": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Comment on a blog post",
                "parameters": [
                    {"type": "string", "description": "Blog post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateCommentReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BlogPost"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "invalid bearer token", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/blogs/{id}/comment/like/{index}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Like a comment by position",
                "parameters": [
                    {"type": "string", "description": "Blog post ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Comment index", "name": "index", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BlogPost"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/blogs/{id}/comments/{commentId}/like": {
            "put": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Like a comment by id",
                "parameters": [
                    {"type": "string", "description": "Blog post ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Comment ID", "name": "commentId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BlogPost"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "New user", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateUserReq"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "description": "Returns the matching user. When access tokens are enabled the\nAuthorization response header carries a bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user by id",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "malformed id", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "user not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateBlogReq": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.CreateCommentReq": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "dto.BlogPostView": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "author": {"type": "string"},
                "authorName": {"type": "string"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/dto.CommentView"}},
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "likes": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "dto.CommentView": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "content": {"type": "string"},
                "likes": {"type": "integer"},
                "user": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "dto.CreateUserReq": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "dto.LoginReq": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "models.BlogPost": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "author": {"type": "string"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}},
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "likes": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "models.Comment": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "content": {"type": "string"},
                "likes": {"type": "integer"},
                "user": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "createdAt": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blog API",
	Description:      "Users, blog posts, likes and comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

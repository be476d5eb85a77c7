package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Atlas Scheduling API",
        "description": "Admin scheduling service for the campus map: buildings, rooms, courses, instructors and conflict-checked section scheduling",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Admin login and token lifecycle"},
        {"name": "Buildings", "description": "Campus buildings shown on the map"},
        {"name": "Rooms", "description": "Rooms inside buildings"},
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Faculty", "description": "Instructor roster"},
        {"name": "Sections", "description": "Conflict-checked section scheduling"},
        {"name": "Exports", "description": "Schedule exports"}
    ],
    "paths": {
        "/sections/check": {
            "post": {
                "tags": ["Sections"],
                "summary": "Check a candidate schedule for conflicts",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckSectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Conflict check outcome", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed day set or time range"},
                    "503": {"description": "Section corpus unavailable"}
                }
            }
        },
        "/sections": {
            "get": {
                "tags": ["Sections"],
                "summary": "List sections",
                "parameters": [
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "room_id", "in": "query", "type": "string"},
                    {"name": "faculty_id", "in": "query", "type": "string"},
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Sections"],
                "summary": "Create section",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Schedule conflict"}
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "CheckSectionRequest": {
            "type": "object",
            "required": ["room_id", "day", "time_slot"],
            "properties": {
                "room_id": {"type": "string"},
                "faculty_id": {"type": "string"},
                "day": {"type": "string", "example": "M W F"},
                "time_slot": {"type": "string", "example": "9:00 AM - 10:30 AM"},
                "exclude_section_id": {"type": "string"}
            }
        },
        "CreateSectionRequest": {
            "type": "object",
            "required": ["course_id", "section_label", "type", "room_id", "day", "time_slot"],
            "properties": {
                "course_id": {"type": "string"},
                "section_label": {"type": "string"},
                "type": {"type": "string", "enum": ["LECTURE", "LABORATORY"]},
                "room_id": {"type": "string"},
                "faculty_id": {"type": "string"},
                "day": {"type": "string", "example": "T TH"},
                "time_slot": {"type": "string", "example": "1:00 PM - 2:30 PM"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

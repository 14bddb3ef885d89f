package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Report Card API",
        "description": "Grade aggregation and term resolution engine for school report cards",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Terms", "description": "Academic calendar and date-to-term resolution"},
        {"name": "Grades", "description": "Grading scales and grade code validation"},
        {"name": "Courses", "description": "Course topic/competency matrices"},
        {"name": "TestResults", "description": "Graded test sheet intake"},
        {"name": "Reports", "description": "Student reports, summaries and report cards"},
        {"name": "Analytics", "description": "Class test overview"},
        {"name": "Exports", "description": "Printable report card and overview downloads"}
    ],
    "paths": {
        "/terms/resolve": {
            "get": {
                "tags": ["Terms"],
                "summary": "Resolve a date to its academic term",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "academicYearId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No term or year covers the date"}
                }
            }
        },
        "/terms": {
            "get": {
                "tags": ["Terms"],
                "summary": "List academic terms",
                "parameters": [
                    {"name": "academicYearId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Terms"],
                "summary": "Create an academic term",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Overlap or ordinal conflict"}
                }
            }
        },
        "/academic-years": {
            "get": {
                "tags": ["Terms"],
                "summary": "List academic years",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Terms"],
                "summary": "Create an academic year",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Year overlap"}
                }
            }
        },
        "/grades/validate": {
            "post": {
                "tags": ["Grades"],
                "summary": "Validate a grade code against a grading scale",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grading-scales/{id}": {
            "get": {
                "tags": ["Grades"],
                "summary": "Get a grading scale with its intervals",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grading-scales/{id}/codes": {
            "get": {
                "tags": ["Grades"],
                "summary": "List the ordered grade codes of a scale",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}/matrix": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get the topic/competency matrix of a course",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/test-results": {
            "get": {
                "tags": ["TestResults"],
                "summary": "List test results",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["TestResults"],
                "summary": "Record a graded test sheet",
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Validation failure"}
                }
            }
        },
        "/student-reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Open a student report for a course",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Report already exists"}
                }
            }
        },
        "/student-reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Get a student report with its detail rows",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student-reports/details/{detailId}/grade": {
            "put": {
                "tags": ["Reports"],
                "summary": "Write one term grade of a report detail row",
                "parameters": [
                    {"name": "detailId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "422": {"description": "Grade code rejected; field reset"}
                }
            }
        },
        "/student-reports/card": {
            "get": {
                "tags": ["Reports"],
                "summary": "Assemble a student's full report card",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student-reports/card/pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a student's report card as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/reports/course-summary": {
            "get": {
                "tags": ["Reports"],
                "summary": "Aggregate one student's course scores per term",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/overall": {
            "get": {
                "tags": ["Reports"],
                "summary": "Average trimester totals across all program courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/term-comments": {
            "post": {
                "tags": ["Reports"],
                "summary": "Store a teacher's term comments for a student",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Comment already exists"}
                }
            }
        },
        "/director-messages": {
            "post": {
                "tags": ["Reports"],
                "summary": "Store the director's report card message",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Message already exists"}
                }
            }
        },
        "/analytics/class-overview": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Class test overview with grouped averages",
                "parameters": [
                    {"name": "academicYearId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/class-overview/csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the class overview rows as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/analytics/system": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Aggregated runtime metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
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

package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Hand-maintained OpenAPI document. Kept in sync with the routes in
// server.go; regenerate-by-hand when endpoints change.
const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GymDesk API",
        "description": "REST API para la gestión del gimnasio: socios, planes, membresías, clases, reservas, asistencias y pagos.",
        "version": "1.0"
    },
    "basePath": "/",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "auth", "description": "Autenticación"},
        {"name": "socios", "description": "Socios e instructores"},
        {"name": "servicios", "description": "Planes del gimnasio"},
        {"name": "membresias", "description": "Membresías"},
        {"name": "clases", "description": "Clases y disponibilidad"},
        {"name": "reservas", "description": "Reservas de clases"},
        {"name": "asistencias", "description": "Control de asistencia"},
        {"name": "pagos", "description": "Pagos y comprobantes"},
        {"name": "system", "description": "Salud y métricas"}
    ],
    "paths": {
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "user + token"},
                    "401": {"description": "Credenciales inválidas"},
                    "429": {"description": "Demasiados intentos"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Cerrar sesión (revoca el token)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/user": {
            "get": {
                "tags": ["auth"],
                "summary": "Identidad del usuario autenticado",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "No autenticado"}}
            }
        },
        "/perfil": {
            "get": {
                "tags": ["socios"],
                "summary": "Perfil del socio autenticado",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/socios": {
            "get": {
                "tags": ["socios"],
                "summary": "Listar socios",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "estado", "in": "query", "type": "string"},
                    {"name": "tipo_persona", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["socios"],
                "summary": "Crear socio o instructor",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Creado"}, "422": {"description": "Validación"}}
            }
        },
        "/socios/{id}": {
            "get": {"tags": ["socios"], "summary": "Obtener socio", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "No encontrado"}}},
            "put": {"tags": ["socios"], "summary": "Actualizar socio", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["socios"], "summary": "Eliminar o desactivar socio", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/socios/{id}/create-user": {
            "post": {"tags": ["socios"], "summary": "Crear acceso para un socio", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"201": {"description": "Creado"}, "409": {"description": "Ya tiene usuario"}}}
        },
        "/servicios": {
            "get": {"tags": ["servicios"], "summary": "Listar planes", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["servicios"], "summary": "Crear plan", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Creado"}}}
        },
        "/servicios/{id}": {
            "put": {"tags": ["servicios"], "summary": "Actualizar plan", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["servicios"], "summary": "Eliminar plan", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Tiene membresías asociadas"}}}
        },
        "/membresias": {
            "get": {"tags": ["membresias"], "summary": "Listar membresías", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["membresias"], "summary": "Crear membresía", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Creada"}}}
        },
        "/membresias/{id}": {
            "put": {"tags": ["membresias"], "summary": "Actualizar membresía", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["membresias"], "summary": "Cancelar membresía", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/clases": {
            "get": {"tags": ["clases"], "summary": "Listar clases", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["clases"], "summary": "Crear clase", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Creada"}}}
        },
        "/clases/{id}": {
            "put": {"tags": ["clases"], "summary": "Actualizar clase", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["clases"], "summary": "Cancelar clase", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/clases-disponibles": {
            "get": {
                "tags": ["clases"],
                "summary": "Instancias de clases con disponibilidad",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reservas": {
            "get": {
                "tags": ["reservas"],
                "summary": "Listar reservas",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id_persona", "in": "query", "type": "integer"},
                    {"name": "fecha", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["reservas"],
                "summary": "Reservar un cupo",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Creada"},
                    "409": {"description": "Sin cupos, duplicada o sin créditos"}
                }
            }
        },
        "/reservas/{id}": {
            "delete": {"tags": ["reservas"], "summary": "Cancelar reserva", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Ya finalizada"}}}
        },
        "/asistencias": {
            "get": {"tags": ["asistencias"], "summary": "Listar asistencias", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["asistencias"], "summary": "Registrar asistencia", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Registrada"}}}
        },
        "/pagos": {
            "get": {"tags": ["pagos"], "summary": "Listar pagos", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["pagos"], "summary": "Registrar pago", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Registrado"}}}
        },
        "/pagos/{id}": {
            "put": {"tags": ["pagos"], "summary": "Actualizar pago", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/pagos/{id}/comprobante": {
            "get": {"tags": ["pagos"], "summary": "Descargar comprobante PDF", "security": [{"BearerAuth": []}], "produces": ["application/pdf"], "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "PDF"}, "404": {"description": "No encontrado"}}}
        },
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/metrics": {
            "get": {"tags": ["system"], "summary": "Métricas Prometheus", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
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

// SetupSwagger registers the Swagger UI routes.
func SetupSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

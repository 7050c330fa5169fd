// Package docs описание REST API ingestion service в формате Swagger 2.0, регистрируется в swag.
// Поддерживается вручную вместе с аннотациями обработчиков в internal/api/rest.
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
        "/classify": {
            "post": {
                "description": "Определяет категорию и извлекает поля (сумма, комиссия, баланс, стороны, дата) без записи в БД",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classify"],
                "summary": "Классифицировать SMS",
                "parameters": [
                    {
                        "description": "Текст сообщения",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/rest.ClassifyRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Результат классификации", "schema": {"$ref": "#/definitions/models.ClassificationResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/errors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Журнал ошибок импорта",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Лимит результатов (максимум 500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Записи журнала", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/import": {
            "post": {
                "description": "Принимает массив сообщений [{body, date, address}] или объект {\"messages\": [...]}. Каждое сообщение обрабатывается независимо: ошибка одного не останавливает батч.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Импортировать пакет SMS (JSON)",
                "parameters": [
                    {"type": "string", "default": "api", "description": "Имя источника для истории импорта", "name": "source", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Итог импорта", "schema": {"$ref": "#/definitions/models.ImportResult"}},
                    "400": {"description": "Пакет не удалось декодировать", "schema": {"$ref": "#/definitions/models.ImportResult"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/import-history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "История импорта",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Лимит результатов (максимум 500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "История", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/messages/generate": {
            "get": {
                "description": "Генерирует сообщения заданной или случайной категории. Сообщения не сохраняются, их можно отправить в /import.",
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Сгенерировать тестовые SMS",
                "parameters": [
                    {"type": "string", "description": "Категория (например, Incoming Money)", "name": "category", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Количество (максимум 100)", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Сгенерированные сообщения", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/stats": {
            "get": {
                "description": "Итоги, средняя сумма, процент успешных, распределение по типам и объем по месяцам",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Статистика транзакций",
                "responses": {
                    "200": {"description": "Статистика", "schema": {"$ref": "#/definitions/models.Stats"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/transactions": {
            "get": {
                "description": "Постраничный список с поиском по тексту, типу, дате и диапазону сумм",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Получить список транзакций",
                "parameters": [
                    {"type": "string", "description": "Поиск по тексту SMS, именам и идентификатору", "name": "search", "in": "query"},
                    {"type": "integer", "description": "ID типа транзакции", "name": "type", "in": "query"},
                    {"type": "string", "description": "Дата (YYYY-MM-DD)", "name": "date", "in": "query"},
                    {"type": "number", "description": "Минимальная сумма", "name": "min_amount", "in": "query"},
                    {"type": "number", "description": "Максимальная сумма", "name": "max_amount", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Номер страницы", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Размер страницы (максимум 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Страница транзакций", "schema": {"$ref": "#/definitions/models.TransactionPage"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "description": "Удаляет все транзакции и исходные SMS из базы данных, счетчики в Redis сбрасываются",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Очистить все транзакции",
                "responses": {
                    "200": {"description": "Транзакции очищены", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "description": "Возвращает транзакцию вместе с исходным текстом SMS",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Получить транзакцию",
                "parameters": [
                    {"type": "integer", "description": "ID транзакции", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Транзакция", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/types": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Типы транзакций",
                "responses": {
                    "200": {"description": "Список типов", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/upload": {
            "post": {
                "description": "Принимает файл (multipart поле \"file\") или сырое тело запроса. Формат определяется параметром format, расширением файла или содержимым.",
                "consumes": ["multipart/form-data", "application/xml"],
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Загрузить файл выгрузки SMS",
                "parameters": [
                    {"type": "file", "description": "Файл выгрузки (smses/sms XML или JSON)", "name": "file", "in": "formData"},
                    {"type": "string", "description": "Формат пакета: xml, json (по умолчанию автоопределение)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Итог импорта", "schema": {"$ref": "#/definitions/models.ImportResult"}},
                    "400": {"description": "Пакет не удалось декодировать", "schema": {"$ref": "#/definitions/models.ImportResult"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.ClassificationResult": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "direction": {"type": "string"},
                "fields": {"$ref": "#/definitions/models.ExtractedFields"},
                "rule": {"type": "string"}
            }
        },
        "models.ExtractedFields": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "balance": {"type": "number"},
                "fee": {"type": "number"},
                "phone_number": {"type": "string"},
                "recipient": {"type": "string"},
                "sender": {"type": "string"},
                "transaction_date": {"type": "string"},
                "transaction_id": {"type": "string"}
            }
        },
        "models.ImportError": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "rawMessage": {"$ref": "#/definitions/models.RawMessage"}
            }
        },
        "models.ImportResult": {
            "type": "object",
            "properties": {
                "batchId": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/models.ImportError"}},
                "failed": {"type": "integer"},
                "succeeded": {"type": "integer"}
            }
        },
        "models.MonthlyVolume": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "month": {"type": "string"}
            }
        },
        "models.Pagination": {
            "type": "object",
            "properties": {
                "currentPage": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "models.RawMessage": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "body": {"type": "string"},
                "date": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.Stats": {
            "type": "object",
            "properties": {
                "averageAmount": {"type": "number"},
                "monthlyVolume": {"type": "array", "items": {"$ref": "#/definitions/models.MonthlyVolume"}},
                "successRate": {"type": "integer"},
                "totalFees": {"type": "number"},
                "totalTransactions": {"type": "integer"},
                "totalVolume": {"type": "number"},
                "typeDistribution": {"type": "array", "items": {"$ref": "#/definitions/models.TypeCount"}}
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "balance": {"type": "number"},
                "created_at": {"type": "string"},
                "direction": {"type": "string"},
                "fee": {"type": "number"},
                "id": {"type": "integer"},
                "phone_number": {"type": "string"},
                "raw_message": {"type": "string"},
                "recipient": {"type": "string"},
                "sender": {"type": "string"},
                "source_message_id": {"type": "integer"},
                "status": {"type": "string"},
                "transaction_date": {"type": "string"},
                "transaction_id": {"type": "string"},
                "type_id": {"type": "integer"},
                "type_name": {"type": "string"}
            }
        },
        "models.TransactionPage": {
            "type": "object",
            "properties": {
                "pagination": {"$ref": "#/definitions/models.Pagination"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}
            }
        },
        "models.TypeCount": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "type_name": {"type": "string"}
            }
        },
        "rest.ClassifyRequest": {
            "type": "object",
            "required": ["body"],
            "properties": {
                "body": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "MoMo SMS Analysis API",
	Description:      "Импорт, классификация и анализ SMS о транзакциях мобильных денег",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

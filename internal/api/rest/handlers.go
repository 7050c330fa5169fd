package rest

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"momo-analysis/internal/generator"
	"momo-analysis/internal/importer"
	"momo-analysis/internal/logger"
	"momo-analysis/internal/models"
	"momo-analysis/internal/services"
	"momo-analysis/internal/source"
)

const (
	serviceName = "ingestion-service"

	// maxUploadSize ограничение размера загружаемого пакета
	maxUploadSize = 32 << 20
	maxGenerate   = 100
)

type Handlers struct {
	transactionService services.TransactionService
	classifierService  services.ClassifierService
	generator          *generator.SMSGenerator
}

// ClassifyRequest тело запроса на классификацию
type ClassifyRequest struct {
	Body string `json:"body" binding:"required"`
}

// Создает новые обработчики REST API
func NewHandlers(transactionService services.TransactionService, classifierService services.ClassifierService, gen *generator.SMSGenerator) *Handlers {
	return &Handlers{
		transactionService: transactionService,
		classifierService:  classifierService,
		generator:          gen,
	}
}

// ImportMessages импортирует JSON-пакет сообщений
// @Summary Импортировать пакет SMS (JSON)
// @Description Принимает массив сообщений [{body, date, address}] или объект {"messages": [...]}. Каждое сообщение обрабатывается независимо: ошибка одного не останавливает батч.
// @Tags import
// @Accept json
// @Produce json
// @Param source query string false "Имя источника для истории импорта" default(api)
// @Success 200 {object} models.ImportResult "Итог импорта"
// @Failure 400 {object} models.ImportResult "Пакет не удалось декодировать"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /import [post]
func (h *Handlers) ImportMessages(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	src := c.DefaultQuery("source", "api")
	h.respondImport(c, src, source.FormatJSON, payload)
}

// UploadFile импортирует файл-выгрузку SMS (XML или JSON)
// @Summary Загрузить файл выгрузки SMS
// @Description Принимает файл (multipart поле "file") или сырое тело запроса. Формат определяется параметром format, расширением файла или содержимым.
// @Tags import
// @Accept multipart/form-data
// @Accept xml
// @Produce json
// @Param file formData file false "Файл выгрузки (smses/sms XML или JSON)"
// @Param format query string false "Формат пакета: xml, json (по умолчанию автоопределение)"
// @Success 200 {object} models.ImportResult "Итог импорта"
// @Failure 400 {object} models.ImportResult "Пакет не удалось декодировать"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /upload [post]
func (h *Handlers) UploadFile(c *gin.Context) {
	format, err := source.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src := "upload"
	var payload []byte

	if fileHeader, ferr := c.FormFile("file"); ferr == nil {
		if fileHeader.Size > maxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer f.Close()

		if payload, err = io.ReadAll(f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		src = fileHeader.Filename
		if format == source.FormatAuto {
			format = formatFromExt(fileHeader.Filename)
		}
	} else {
		if payload, err = io.ReadAll(io.LimitReader(c.Request.Body, maxUploadSize)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}
	}

	h.respondImport(c, src, format, payload)
}

func (h *Handlers) respondImport(c *gin.Context, src string, format source.Format, payload []byte) {
	logger.LogEvent(logger.EventBatchStarted, serviceName, "api", map[string]interface{}{
		"source": src,
		"format": string(format),
		"bytes":  len(payload),
	})

	result, err := h.transactionService.ImportPayload(c.Request.Context(), src, format, payload)
	if err != nil {
		var decodeErr *importer.BatchDecodeError
		if errors.As(err, &decodeErr) && result != nil {
			c.JSON(http.StatusBadRequest, result)
			return
		}
		log.Error().Err(err).Str("source", src).Msg("Import failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import messages"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func formatFromExt(filename string) source.Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xml":
		return source.FormatXML
	case ".json":
		return source.FormatJSON
	default:
		return source.FormatAuto
	}
}

// Classify классифицирует текст SMS без сохранения
// @Summary Классифицировать SMS
// @Description Определяет категорию и извлекает поля (сумма, комиссия, баланс, стороны, дата) без записи в БД
// @Tags classify
// @Accept json
// @Produce json
// @Param request body ClassifyRequest true "Текст сообщения"
// @Success 200 {object} models.ClassificationResult "Результат классификации"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /classify [post]
func (h *Handlers) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.classifierService.Classify(req.Body))
}

// ListTransactions возвращает страницу транзакций
// @Summary Получить список транзакций
// @Description Постраничный список с поиском по тексту, типу, дате и диапазону сумм
// @Tags transactions
// @Produce json
// @Param search query string false "Поиск по тексту SMS, именам и идентификатору"
// @Param type query int false "ID типа транзакции"
// @Param date query string false "Дата (YYYY-MM-DD)"
// @Param min_amount query number false "Минимальная сумма"
// @Param max_amount query number false "Максимальная сумма"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы (максимум 100)" default(10)
// @Success 200 {object} models.TransactionPage "Страница транзакций"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transactions [get]
func (h *Handlers) ListTransactions(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list transactions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func parseFilter(c *gin.Context) (models.TransactionFilter, error) {
	filter := models.TransactionFilter{Search: strings.TrimSpace(c.Query("search"))}

	if v := c.Query("type"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid type")
		}
		filter.TypeID = id
	}

	if v := c.Query("date"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errors.New("invalid date, expected YYYY-MM-DD")
		}
		filter.Date = &day
	}

	if v := c.Query("min_amount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return filter, errors.New("invalid min_amount")
		}
		filter.MinAmount = &amount
	}

	if v := c.Query("max_amount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return filter, errors.New("invalid max_amount")
		}
		filter.MaxAmount = &amount
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, errors.New("invalid page")
		}
		filter.Page = page
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = limit
	}

	return filter, nil
}

// GetTransaction возвращает транзакцию по id
// @Summary Получить транзакцию
// @Description Возвращает транзакцию вместе с исходным текстом SMS
// @Tags transactions
// @Produce json
// @Param id path int true "ID транзакции"
// @Success 200 {object} models.Transaction "Транзакция"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transactions/{id} [get]
func (h *Handlers) GetTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transaction"})
		return
	}

	if tx == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, tx)
}

// GetStats возвращает агрегированную статистику
// @Summary Статистика транзакций
// @Description Итоги, средняя сумма, процент успешных, распределение по типам и объем по месяцам
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats "Статистика"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stats [get]
func (h *Handlers) GetStats(c *gin.Context) {
	stats, err := h.transactionService.GetStats(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListTypes возвращает справочник типов
// @Summary Типы транзакций
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]interface{} "Список типов"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /types [get]
func (h *Handlers) ListTypes(c *gin.Context) {
	types, err := h.transactionService.ListTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transaction types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"types": types})
}

// ListErrors возвращает журнал ошибок импорта
// @Summary Журнал ошибок импорта
// @Tags import
// @Produce json
// @Param limit query int false "Лимит результатов (максимум 500)" default(50)
// @Success 200 {object} map[string]interface{} "Записи журнала"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /errors [get]
func (h *Handlers) ListErrors(c *gin.Context) {
	records, err := h.transactionService.ListErrors(c.Request.Context(), queryLimit(c, 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get error log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"errors": records})
}

// ListImportHistory возвращает историю импортов
// @Summary История импорта
// @Tags import
// @Produce json
// @Param limit query int false "Лимит результатов (максимум 500)" default(50)
// @Success 200 {object} map[string]interface{} "История"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /import-history [get]
func (h *Handlers) ListImportHistory(c *gin.Context) {
	history, err := h.transactionService.ListImportHistory(c.Request.Context(), queryLimit(c, 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get import history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func queryLimit(c *gin.Context, def int) int {
	limit := def
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}
	return limit
}

// ClearAllTransactions очищает все транзакции
// @Summary Очистить все транзакции
// @Description Удаляет все транзакции и исходные SMS из базы данных, счетчики в Redis сбрасываются
// @Tags transactions
// @Produce json
// @Success 200 {object} map[string]interface{} "Транзакции очищены"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transactions [delete]
func (h *Handlers) ClearAllTransactions(c *gin.Context) {
	if err := h.transactionService.ClearAllTransactions(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear transactions"})
		return
	}

	logger.LogEvent(logger.EventDBUpdated, serviceName, "sqlite", map[string]interface{}{
		"action": "database_cleared",
	})

	c.JSON(http.StatusOK, gin.H{
		"message":       "All transactions cleared successfully",
		"clear_storage": true,
	})
}

// GenerateMessages генерирует тестовые SMS
// @Summary Сгенерировать тестовые SMS
// @Description Генерирует сообщения заданной или случайной категории. Сообщения не сохраняются, их можно отправить в /import.
// @Tags messages
// @Produce json
// @Param category query string false "Категория (например, Incoming Money)"
// @Param count query int false "Количество (максимум 100)" default(1)
// @Success 200 {object} map[string]interface{} "Сгенерированные сообщения"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /messages/generate [get]
func (h *Handlers) GenerateMessages(c *gin.Context) {
	count := 1
	if v := c.Query("count"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxGenerate {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 100"})
			return
		}
		count = parsed
	}

	var category models.Category
	if v := c.Query("category"); v != "" {
		category = models.Category(v)
		if !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
	}

	messages := make([]models.RawMessage, 0, count)
	for i := 0; i < count; i++ {
		if category == "" {
			messages = append(messages, h.generator.GenerateRandomMessage())
		} else {
			messages = append(messages, h.generator.GenerateMessage(category))
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

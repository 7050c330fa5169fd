package classifier

import (
	"momo-analysis/internal/models"
)

// Classifier сопоставляет тексту SMS ровно одну категорию.
// Чистая функция: не имеет состояния кроме неизменяемой таблицы правил.
type Classifier struct {
	rules []Rule
}

// New создает классификатор с таблицей по умолчанию для указанной валюты
func New(currency string) *Classifier {
	if currency == "" {
		currency = DefaultCurrency
	}
	return NewWithRules(DefaultRules(currency))
}

// NewWithRules создает классификатор с произвольной таблицей правил
func NewWithRules(rules []Rule) *Classifier {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Classifier{rules: copied}
}

// Classify возвращает категорию первого сработавшего правила или Uncategorized
func (c *Classifier) Classify(body string) models.Category {
	if r, ok := c.Match(body); ok {
		return r.Category
	}
	return models.CategoryUncategorized
}

// Match возвращает первое сработавшее правило
func (c *Classifier) Match(body string) (Rule, bool) {
	for _, r := range c.rules {
		if r.Matches(body) {
			return r, true
		}
	}
	return Rule{}, false
}

// Rules копия таблицы правил в порядке приоритета
func (c *Classifier) Rules() []Rule {
	copied := make([]Rule, len(c.rules))
	copy(copied, c.rules)
	return copied
}

package classifier

import (
	"regexp"

	"momo-analysis/internal/models"
)

// DefaultCurrency код валюты по умолчанию в текстах SMS
const DefaultCurrency = "RWF"

// Rule правило классификации: первое сработавшее правило определяет категорию
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Category models.Category
	Legacy   bool // правило из числовой таблицы типов 1-10, используется как синоним
}

// Matches проверяет, срабатывает ли правило на тексте сообщения
func (r Rule) Matches(body string) bool {
	return r.Pattern.MatchString(body)
}

// CanonicalRules основная упорядоченная таблица (10 категорий, Uncategorized - fallback).
// Порядок является частью контракта.
func CanonicalRules(currency string) []Rule {
	cur := regexp.QuoteMeta(currency)
	return []Rule{
		rule("incoming_money", `(?i)received .*`+cur, models.CategoryIncomingMoney),
		rule("payment_to_code", `(?i)payment .* to .* \d{4,}`, models.CategoryCodeHolderPayment),
		rule("payment_to_name", `(?i)payment .* to .* [a-z]+`, models.CategoryMobileTransfer),
		rule("bank_deposit", `(?i)bank deposit`, models.CategoryBankDeposit),
		rule("airtime", `(?i)airtime`, models.CategoryAirtime),
		rule("cash_power", `(?i)cash power`, models.CategoryCashPower),
		rule("initiated_by", `(?i)initiated by`, models.CategoryThirdParty),
		rule("withdrawal", `(?i)withdrawal`, models.CategoryAgentWithdrawal),
		rule("bank_transfer", `(?i)bank transfer`, models.CategoryBankTransfer),
		rule("bundle", `(?i)bundle`, models.CategoryBundle),
	}
}

// LegacyRules числовая таблица типов, сведенная к тем же категориям.
// Идет после основных правил и ловит формулировки, которые основная таблица пропускает.
func LegacyRules(currency string) []Rule {
	cur := regexp.QuoteMeta(currency)
	return []Rule{
		legacy("receive_money", `(?i)received.*`+cur+`.*from`, models.CategoryIncomingMoney),
		legacy("payment_to_merchant", `(?i)payment.*(?:code|token|merchant)`, models.CategoryCodeHolderPayment),
		legacy("transfer_to_mobile", `(?i)transferred.*to|payment.*to`, models.CategoryMobileTransfer),
		legacy("bank_deposit", `(?i)bank.*deposit`, models.CategoryBankDeposit),
		legacy("cashpower_payment", `(?i)cash.*power|electricity`, models.CategoryCashPower),
		legacy("third_party_payment", `(?i)direct payment|third.*party`, models.CategoryThirdParty),
		legacy("agent_withdrawal", `(?i)withdrawn|withdraw`, models.CategoryAgentWithdrawal),
		legacy("bank_transfer", `(?i)bank.*transfer`, models.CategoryBankTransfer),
		legacy("bundle_purchase", `(?i)bundle|pack|internet`, models.CategoryBundle),
	}
}

// DefaultRules единая таблица: основные правила, затем синонимы из числовой таблицы
func DefaultRules(currency string) []Rule {
	return append(CanonicalRules(currency), LegacyRules(currency)...)
}

// legacyTypeIDs соответствие числовых идентификаторов типов 1-10 категориям
var legacyTypeIDs = map[int]models.Category{
	1:  models.CategoryIncomingMoney,
	2:  models.CategoryCodeHolderPayment,
	3:  models.CategoryMobileTransfer,
	4:  models.CategoryBankDeposit,
	5:  models.CategoryAirtime,
	6:  models.CategoryCashPower,
	7:  models.CategoryThirdParty,
	8:  models.CategoryAgentWithdrawal,
	9:  models.CategoryBankTransfer,
	10: models.CategoryBundle,
}

// LegacyTypeCategory переводит числовой тип (1-10) в категорию
func LegacyTypeCategory(typeID int) (models.Category, bool) {
	c, ok := legacyTypeIDs[typeID]
	return c, ok
}

func rule(name, pattern string, category models.Category) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern), Category: category}
}

func legacy(name, pattern string, category models.Category) Rule {
	r := rule("legacy_"+name, pattern, category)
	r.Legacy = true
	return r
}

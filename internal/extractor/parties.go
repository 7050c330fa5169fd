package extractor

import (
	"regexp"
	"strings"

	"momo-analysis/internal/models"
)

var (
	fromLabel  = regexp.MustCompile(`(?i)\bfrom\s+`)
	toLabel    = regexp.MustCompile(`(?i)\bto\s+`)
	agentLabel = regexp.MustCompile(`(?i)\bvia agent\s*:\s*`)

	// имя заканчивается на цифрах, скобке, знаке препинания или слове-связке
	inboundNameEnd  = regexp.MustCompile(`(?i)[\d(.,;:]|\s(?:on|at|has)\b`)
	outboundNameEnd = regexp.MustCompile(`(?i)[\d(.,;:]|\s(?:on|at|has|from)\b`)
)

// Parties извлекает отправителя и получателя в зависимости от категории:
// "from <имя>" для входящих, "via agent: <имя>" для снятия у агента,
// "to <имя>" для платежей и переводов. Для остальных категорий имен нет.
func Parties(body string, category models.Category) (sender, recipient *string) {
	switch category {
	case models.CategoryIncomingMoney:
		sender = nameAfter(fromLabel, inboundNameEnd, body)
	case models.CategoryAgentWithdrawal:
		recipient = nameAfter(agentLabel, outboundNameEnd, body)
	case models.CategoryCodeHolderPayment, models.CategoryMobileTransfer, models.CategoryBankTransfer:
		recipient = nameAfter(toLabel, outboundNameEnd, body)
	}
	return sender, recipient
}

func nameAfter(label, end *regexp.Regexp, body string) *string {
	loc := label.FindStringIndex(body)
	if loc == nil {
		return nil
	}

	rest := body[loc[1]:]
	if idx := end.FindStringIndex(rest); idx != nil {
		rest = rest[:idx[0]]
	}

	name := strings.Join(strings.Fields(rest), " ")
	if name == "" {
		return nil
	}
	return &name
}

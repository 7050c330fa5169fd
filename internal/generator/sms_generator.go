package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"momo-analysis/internal/models"
)

const bodyTimeLayout = "2006-01-02 15:04:05"

var (
	firstNames = []string{"Jane", "Samuel", "Alex", "Linda", "Robert", "Grace", "Eric", "Aline"}
	lastNames  = []string{"Smith", "Carter", "Doe", "Mugisha", "Uwase", "Habimana", "Keza", "Niyonzima"}
	agentNames = []string{"Agent Sophia", "Agent Kevin", "Agent Claude", "Agent Diane"}
	banks      = []string{"Equity Bank", "Bank of Kigali", "I&M Bank", "Cogebanque"}
	companies  = []string{"Ishimwe Ltd", "Kigali Traders", "Umuganda Supplies", "Inzozi Ventures"}
	bundles    = []string{"500MB", "1GB", "2GB", "5GB"}
)

// SMSGenerator генерирует правдоподобные SMS мобильных денег для демо и тестов.
// Каждый шаблон классифицируется в свою категорию.
type SMSGenerator struct {
	mu       sync.Mutex
	rand     *rand.Rand
	currency string
	now      func() time.Time
}

func NewSMSGenerator(currency string) *SMSGenerator {
	return NewSMSGeneratorWithSeed(currency, time.Now().UnixNano())
}

// NewSMSGeneratorWithSeed генератор с фиксированным seed (воспроизводимые последовательности)
func NewSMSGeneratorWithSeed(currency string, seed int64) *SMSGenerator {
	if currency == "" {
		currency = "RWF"
	}
	return &SMSGenerator{
		rand:     rand.New(rand.NewSource(seed)),
		currency: currency,
		now:      time.Now,
	}
}

// GenerateRandomMessage генерирует сообщение случайной категории
func (g *SMSGenerator) GenerateRandomMessage() models.RawMessage {
	g.mu.Lock()
	category := models.Categories[g.rand.Intn(len(models.Categories)-1)]
	g.mu.Unlock()

	return g.GenerateMessage(category)
}

// GenerateBatch генерирует n сообщений случайных категорий
func (g *SMSGenerator) GenerateBatch(n int) []models.RawMessage {
	messages := make([]models.RawMessage, 0, n)
	for i := 0; i < n; i++ {
		messages = append(messages, g.GenerateRandomMessage())
	}
	return messages
}

// GenerateMessage генерирует сообщение заданной категории.
// Для Uncategorized возвращается служебное сообщение без суммы.
func (g *SMSGenerator) GenerateMessage(category models.Category) models.RawMessage {
	g.mu.Lock()
	defer g.mu.Unlock()

	at := g.now().UTC().Add(-time.Duration(g.rand.Intn(30*24*60)) * time.Minute).Truncate(time.Second)
	date := at.Format(bodyTimeLayout)
	cur := g.currency
	amount := g.amount()
	balance := amount + g.amount()
	txID := g.digits(11)

	var body string
	switch category {
	case models.CategoryIncomingMoney:
		body = fmt.Sprintf("You have received %d %s from %s (*********%s) on your mobile money account at %s. Your new balance:%d %s. Financial Transaction Id: %s.",
			amount, cur, g.person(), g.digits(3), date, balance, cur, txID)
	case models.CategoryCodeHolderPayment:
		body = fmt.Sprintf("TxId: %s. Your payment of %s %s to %s %s has been completed at %s. Your new balance: %s %s. Fee was 0 %s.",
			txID, withCommas(amount), cur, g.person(), g.digits(5), date, withCommas(balance), cur, cur)
	case models.CategoryMobileTransfer:
		// без даты: " 2024" после "to" превратил бы перевод в оплату по коду
		body = fmt.Sprintf("Your payment of %s %s to %s has been completed. Your new balance: %s %s.",
			withCommas(amount), cur, g.person(), withCommas(balance), cur)
	case models.CategoryBankDeposit:
		body = fmt.Sprintf("*113*R*A bank deposit of %d %s has been added to your mobile money account at %s. Your NEW BALANCE :%d %s. Cash Deposit::CASH::::0::250795963036.",
			amount, cur, date, balance, cur)
	case models.CategoryAirtime:
		body = fmt.Sprintf("*162*TxId:%s*S*Your airtime purchase of %d %s has been completed at %s. Fee was 0 %s. Your new balance: %d %s.",
			txID, amount, cur, date, cur, balance, cur)
	case models.CategoryCashPower:
		body = fmt.Sprintf("*162*TxId:%s*S*Your Cash Power purchase of %d %s has been completed at %s. Token: %s-%s. Fee was 0 %s. Your new balance: %d %s.",
			txID, amount, cur, date, g.digits(4), g.digits(4), cur, balance, cur)
	case models.CategoryThirdParty:
		body = fmt.Sprintf("*164*S*Y'ello, A transaction of %d %s initiated by %s was completed at %s. Your new balance: %d %s. Financial Transaction Id: %s.",
			amount, cur, g.pick(companies), date, balance, cur, txID)
	case models.CategoryAgentWithdrawal:
		body = fmt.Sprintf("Withdrawal of %d %s via agent: %s (2507%s) completed at %s. Fee was: 350 %s. Your new balance: %d %s. Financial Transaction Id: %s.",
			amount, cur, g.pick(agentNames), g.digits(8), date, cur, balance, cur, txID)
	case models.CategoryBankTransfer:
		body = fmt.Sprintf("You have made a bank transfer of %d %s to %s at %s. Fee was: 250 %s. Your new balance: %d %s. TxId: %s.",
			amount, cur, g.pick(banks), date, cur, balance, cur, txID)
	case models.CategoryBundle:
		body = fmt.Sprintf("Yello! You have purchased an internet bundle of %s for %d %s at %s. It is valid for 30 days. TxId: %s.",
			g.pick(bundles), amount, cur, date, txID)
	default:
		body = fmt.Sprintf("Dial *182*7*1# to check your account. Code %s expires soon.", g.digits(4))
	}

	return models.RawMessage{
		Body:      body,
		Timestamp: at,
		Address:   "M-Money",
		Type:      "1",
	}
}

// amount сумма кратная 100 в диапазоне 500..50000
func (g *SMSGenerator) amount() int {
	return 500 + g.rand.Intn(496)*100
}

func (g *SMSGenerator) person() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

func (g *SMSGenerator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}

func (g *SMSGenerator) digits(n int) string {
	var b strings.Builder
	b.WriteByte(byte('1' + g.rand.Intn(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + g.rand.Intn(10)))
	}
	return b.String()
}

// withCommas форматирует целое с разделителями тысяч: 12345 -> 12,345
func withCommas(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

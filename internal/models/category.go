package models

// Category категория операции из закрытого списка
type Category string

const (
	CategoryIncomingMoney     Category = "Incoming Money"
	CategoryCodeHolderPayment Category = "Payments to Code Holders"
	CategoryMobileTransfer    Category = "Transfers to Mobile Numbers"
	CategoryBankDeposit       Category = "Bank Deposits"
	CategoryAirtime           Category = "Airtime Bill Payments"
	CategoryCashPower         Category = "Cash Power Bill Payments"
	CategoryThirdParty        Category = "Third Party Transactions"
	CategoryAgentWithdrawal   Category = "Withdrawals from Agents"
	CategoryBankTransfer      Category = "Bank Transfers"
	CategoryBundle            Category = "Bundle Purchases"
	CategoryUncategorized     Category = "Uncategorized"
)

// Categories все категории в порядке приоритета правил классификации
var Categories = []Category{
	CategoryIncomingMoney,
	CategoryCodeHolderPayment,
	CategoryMobileTransfer,
	CategoryBankDeposit,
	CategoryAirtime,
	CategoryCashPower,
	CategoryThirdParty,
	CategoryAgentWithdrawal,
	CategoryBankTransfer,
	CategoryBundle,
	CategoryUncategorized,
}

// Valid проверяет, что категория входит в закрытый список
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Direction направление движения денег
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// DirectionOf выводит направление только из категории
func DirectionOf(c Category) Direction {
	if c == CategoryIncomingMoney {
		return DirectionIncoming
	}
	return DirectionOutgoing
}

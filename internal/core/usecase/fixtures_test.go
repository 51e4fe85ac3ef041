package usecase

const (
	scenarioPassportText = "Name: John Smith\nDate of Birth: 01/15/1990\nPassport No: AB1234567\nExpiry: 01/15/2030\nRepublic of Example"

	utilityBillText = "Electricity utility bill for March 2024\n" +
		"Full Name: Jane Doe\n" +
		"Address: 42 Elm Street, Springfield 12345\n" +
		"Amount due: 120.50"

	// Classifies as bank_statement (bank statement, transaction, deposit) without
	// an account number label and without the word balance.
	bankStatementNoBalanceText = "Bank Statement for the period of March\n" +
		"Transaction history follows. Deposit of 500.00 received on 03/02.\n" +
		"Thank you for banking with us."
)

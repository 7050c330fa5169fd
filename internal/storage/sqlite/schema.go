package sqlite

import "time"

// initSchema инициализирует схему БД.
// Денежные поля хранятся строкой decimal без потери точности; в запросах приводятся через CAST.
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS transaction_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type_name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS raw_sms_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		address TEXT,
		body TEXT NOT NULL,
		sms_date TEXT,
		sms_type TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		transaction_id TEXT NOT NULL,
		type_id INTEGER NOT NULL REFERENCES transaction_types(id),
		direction TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		fee TEXT NOT NULL DEFAULT '0',
		balance TEXT,
		sender TEXT,
		recipient TEXT,
		phone_number TEXT,
		transaction_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'SUCCESS',
		raw_message TEXT NOT NULL,
		source_message_id INTEGER REFERENCES raw_sms_messages(id),
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS error_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		error_message TEXT NOT NULL,
		raw_data TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS import_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL UNIQUE,
		filename TEXT NOT NULL,
		import_date TEXT NOT NULL,
		status TEXT NOT NULL,
		records_imported INTEGER NOT NULL DEFAULT 0,
		records_failed INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_transaction_id ON transactions(transaction_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_type_id ON transactions(type_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(transaction_date);
	CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status);
	CREATE INDEX IF NOT EXISTS idx_import_history_date ON import_history(import_date);
	`

	return retryOperation(func() error {
		_, err := s.DB.Exec(query)
		return err
	}, 3, 100*time.Millisecond)
}

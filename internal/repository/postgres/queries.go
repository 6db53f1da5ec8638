package postgres

const (
	queryAppendMessage = `
		INSERT INTO messages (name, text)
		VALUES ($1, $2)
		RETURNING id, name, text, timestamp;
	`
	queryListMessages = `
		SELECT id, name, text, timestamp
		FROM messages
		ORDER BY id ASC;
	`
	queryClearMessages = `DELETE FROM messages;`

	queryGetUser = `
		SELECT name, password, role
		FROM users
		WHERE name = $1;
	`
	queryCountUsers = `SELECT COUNT(*) FROM users;`
	queryCreateUser = `
		INSERT INTO users (name, password, role)
		VALUES ($1, $2, $3);
	`
	querySetUserRole = `
		UPDATE users
		SET role = $2
		WHERE name = $1;
	`
	queryDeleteUser = `DELETE FROM users WHERE name = $1;`

	// admin первым, дальше co-admin, потом member; внутри группы по алфавиту
	queryListMembers = `
		SELECT name, role
		FROM users
		ORDER BY CASE role
			WHEN 'admin' THEN 0
			WHEN 'co-admin' THEN 1
			ELSE 2
		END, name ASC;
	`
)

var bootstrapStatements = []string{
	`CREATE TABLE IF NOT EXISTS messages (
		id        SERIAL PRIMARY KEY,
		name      TEXT,
		text      TEXT,
		timestamp TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id       SERIAL PRIMARY KEY,
		name     TEXT UNIQUE,
		password TEXT,
		role     TEXT DEFAULT 'member'
	);`,
}

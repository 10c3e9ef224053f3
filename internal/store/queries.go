package store

const (
	createExtensionQuery = "CREATE EXTENSION IF NOT EXISTS vector"

	createTableQuery = `
		CREATE TABLE IF NOT EXISTS books (
			id SERIAL PRIMARY KEY,
			title TEXT,
			author TEXT,
			description TEXT,
			embedding VECTOR(384)
		)
	`

	searchBooksQuery = `
		SELECT title, author, description, embedding, embedding <-> $1 AS distance
		FROM books
		WHERE (embedding <-> $1) < $2
		ORDER BY distance
		LIMIT $3
	`

	insertBookQuery = `
		INSERT INTO books (title, author, description, embedding)
		VALUES ($1, $2, $3, $4)
	`

	listTitlesQuery    = "SELECT title FROM books"
	listSummariesQuery = "SELECT title, author FROM books"
	countBooksQuery    = "SELECT COUNT(*) FROM books"
)

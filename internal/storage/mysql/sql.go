package mysql

const insertSearchSQL = `
INSERT INTO search_history
  (id, location, bhk, min_rent, max_rent, result_count, searched_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// Newest first; served by idx_search_history_searched_at.
const recentSearchesSQL = `
SELECT id, location, bhk, min_rent, max_rent, result_count, searched_at
FROM search_history
ORDER BY searched_at DESC, id DESC
LIMIT ?
`

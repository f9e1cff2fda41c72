package store

// LoadHistory returns calculator history entries, newest first.
func (s *DB) LoadHistory() ([]string, error) {
	rows, err := s.db.Query("SELECT entry FROM calc_history ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveHistory replaces the stored calculator history.
func (s *DB) SaveHistory(entries []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM calc_history"); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := tx.Exec("INSERT INTO calc_history (position, entry) VALUES (?, ?)", i, e); err != nil {
			return err
		}
	}
	return tx.Commit()
}

package store

import "context"

// DeleteHistoryForTest lets tests build stocks that have no history, which only
// older databases contain.
func DeleteHistoryForTest(s *SQLiteStore, stockID int64) error {
	_, err := s.db.ExecContext(context.Background(), "DELETE FROM stock_history WHERE stock_id = ?", stockID)
	return err
}

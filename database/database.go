package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ThumbnailInfo records where a photo's generated preview lives
type ThumbnailInfo struct {
	ThumbnailPath string
	GeneratedAt   int64
}

// InitThumbnailTable creates the preview lookup table used by the worker pool
func InitThumbnailTable(db *sql.DB) error {
	sqlStmt := `
	CREATE TABLE IF NOT EXISTS photo_thumbnails (
		photo_id TEXT PRIMARY KEY,
		thumbnail_path TEXT NOT NULL,
		generated_at INTEGER NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	if err != nil {
		return fmt.Errorf("failed to create photo_thumbnails table: %w", err)
	}
	return nil
}

// GetThumbnailInfo retrieves the preview path and generation time for a photo
func GetThumbnailInfo(db *sql.DB, photoID string) (ThumbnailInfo, error) {
	var info ThumbnailInfo

	queryBuilder := psql.Select("thumbnail_path", "generated_at").
		From("photo_thumbnails").
		Where(sq.Eq{"photo_id": photoID}).
		Limit(1)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return ThumbnailInfo{}, fmt.Errorf("failed to build SQL query for GetThumbnailInfo: %w", err)
	}

	err = db.QueryRow(sqlStr, args...).Scan(&info.ThumbnailPath, &info.GeneratedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ThumbnailInfo{}, sql.ErrNoRows
		}
		return ThumbnailInfo{}, fmt.Errorf("failed to query or scan thumbnail info for %s: %w", photoID, err)
	}
	return info, nil
}

// SetThumbnailInfo inserts or updates the preview record for a photo
func SetThumbnailInfo(db *sql.DB, photoID, thumbnailPath string, generatedAt int64) error {
	queryBuilder := psql.Insert("photo_thumbnails").
		Columns("photo_id", "thumbnail_path", "generated_at").
		Values(photoID, thumbnailPath, generatedAt).
		Suffix("ON CONFLICT(photo_id) DO UPDATE SET").
		Suffix("thumbnail_path = excluded.thumbnail_path,").
		Suffix("generated_at = excluded.generated_at")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL query for SetThumbnailInfo: %w", err)
	}

	_, err = db.Exec(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to execute set thumbnail info for %s: %w", photoID, err)
	}
	return nil
}

// DeleteThumbnailInfo removes the preview record for a photo; missing rows
// are not an error
func DeleteThumbnailInfo(db *sql.DB, photoID string) error {
	queryBuilder := psql.Delete("photo_thumbnails").
		Where(sq.Eq{"photo_id": photoID})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL query for DeleteThumbnailInfo: %w", err)
	}

	_, err = db.Exec(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to delete thumbnail info for %s: %w", photoID, err)
	}
	return nil
}

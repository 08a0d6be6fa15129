package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quizhive/quiz-content-service/internal/cache"
)

// documentRow is the single table backing every collection. The composite
// primary key (collection, doc_id) makes per-document writes atomic, which is
// the only write guarantee the service relies on.
type documentRow struct {
	Collection string         `gorm:"primaryKey;size:64"`
	DocID      string         `gorm:"primaryKey;size:512;column:doc_id"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string {
	return "documents"
}

// PostgresStore implements Store on a Postgres JSONB table, with an optional
// Redis read-through cache in front of Get/Exists.
type PostgresStore struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

// NewPostgresStore creates the store and migrates the documents table.
func NewPostgresStore(db *gorm.DB, cacheManager *cache.CacheManager) (*PostgresStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}

	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}

	return &PostgresStore{
		db:           db,
		cacheManager: cacheManager,
	}, nil
}

func docCacheKey(collection, id string) string {
	return fmt.Sprintf("%s:%s", collection, id)
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string, dest interface{}) error {
	// Try cache first
	if data, err := s.cacheManager.Document.GetRaw(ctx, docCacheKey(collection, id)); err == nil {
		return json.Unmarshal(data, dest)
	}

	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}

	if err := s.cacheManager.Document.SetRaw(ctx, docCacheKey(collection, id), row.Data, cache.DocumentCacheConfig.TTL); err != nil {
		// Cache failures never fail the read.
		_ = err
	}

	return json.Unmarshal(row.Data, dest)
}

func (s *PostgresStore) Set(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", collection, id, err)
	}

	row := documentRow{
		Collection: collection,
		DocID:      id,
		Data:       datatypes.JSON(data),
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}

	cache.InvalidateDocument(ctx, s.cacheManager, collection, id)
	return nil
}

func (s *PostgresStore) Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal patch for %s/%s: %w", collection, id, err)
	}

	// JSONB concatenation merges top-level fields in a single atomic
	// statement, the closest analogue to a field-level document update.
	result := s.db.WithContext(ctx).
		Model(&documentRow{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Updates(map[string]interface{}{
			"data":       gorm.Expr("data || ?::jsonb", string(patch)),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to patch document %s/%s: %w", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	cache.InvalidateDocument(ctx, s.cacheManager, collection, id)
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostgresStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	// Existence checks happen on every hierarchy write; cache them briefly.
	if cached, err := s.cacheManager.Exists.GetRaw(ctx, docCacheKey(collection, id)); err == nil {
		return string(cached) == "true", nil
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&documentRow{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check document %s/%s: %w", collection, id, err)
	}

	exists := count > 0
	_ = s.cacheManager.Exists.Set(ctx, docCacheKey(collection, id), exists, cache.ExistsCacheConfig.TTL)

	return exists, nil
}

func (s *PostgresStore) QueryByField(ctx context.Context, collection, field, value string) ([]Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND data ->> ? = ?", collection, field, value).
		Order("doc_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by %s: %w", collection, field, err)
	}

	return rowsToDocuments(rows), nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("doc_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	return rowsToDocuments(rows), nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func rowsToDocuments(rows []documentRow) []Document {
	docs := make([]Document, len(rows))
	for i, row := range rows {
		docs[i] = Document{
			ID:   row.DocID,
			Data: json.RawMessage(row.Data),
		}
	}
	return docs
}

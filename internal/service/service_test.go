package service

import (
	"Inkstone/internal/pkg/blogconf"
	"Inkstone/internal/pkg/database"
	"Inkstone/internal/repository"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// memStorage 内存对象存储，测试用
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) Put(_ context.Context, objectKey string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey] = data
	return nil
}

func (m *memStorage) Get(_ context.Context, objectKey string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[objectKey], nil
}

func (m *memStorage) Delete(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectKey)
	return nil
}

func (m *memStorage) PublicURL(objectKey string) string {
	return "mem://" + objectKey
}

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// testServices 一套接好内存依赖的服务实例
type testServices struct {
	db       *gorm.DB
	settings *blogconf.Settings
	storage  *memStorage

	taxonomy TaxonomyService
	post     PostService
	page     PageService
	comment  CommentService
	reaction ReactionService
	media    MediaService
}

func newTestServices(t *testing.T, mutate func(*blogconf.Settings), friendChecker FriendChecker) *testServices {
	t.Helper()

	db := setupTestDB(t)
	settings := blogconf.Default()
	if mutate != nil {
		mutate(settings)
	}
	require.NoError(t, settings.Validate())

	storage := newMemStorage()
	return buildTestServices(db, settings, storage, friendChecker)
}

func buildTestServices(db *gorm.DB, settings *blogconf.Settings, storage *memStorage, friendChecker FriendChecker) *testServices {
	postRepo := repository.NewPostRepository(db)
	pageRepo := repository.NewPageRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	taxonomy := NewTaxonomyService(categoryRepo, tagRepo, settings)
	return &testServices{
		db:       db,
		settings: settings,
		storage:  storage,
		taxonomy: taxonomy,
		post:     NewPostService(postRepo, tagRepo, categoryRepo, commentRepo, taxonomy, settings, storage, friendChecker),
		page:     NewPageService(pageRepo, settings),
		comment:  NewCommentService(commentRepo, postRepo, settings, friendChecker),
		reaction: NewReactionService(reactionRepo, postRepo, settings, friendChecker),
		media:    NewMediaService(mediaRepo, postRepo, storage, settings),
	}
}

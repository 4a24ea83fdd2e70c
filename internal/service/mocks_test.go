package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/event"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/internal/search"
	pkgkafka "github.com/base-angewandte/image-backend-sub000/pkg/kafka"
)

// --- Mock repositories ---

type mockArtworkRepository struct {
	mock.Mock
}

func (m *mockArtworkRepository) Create(ctx context.Context, artwork *domain.Artwork) error {
	args := m.Called(ctx, artwork)
	return args.Error(0)
}

func (m *mockArtworkRepository) GetByID(ctx context.Context, id string) (*domain.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *mockArtworkRepository) List(ctx context.Context, filter repository.ArtworkFilter) ([]domain.Artwork, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Artwork), args.Int(1), args.Error(2)
}

func (m *mockArtworkRepository) Update(ctx context.Context, artwork *domain.Artwork) error {
	args := m.Called(ctx, artwork)
	return args.Error(0)
}

func (m *mockArtworkRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockArtworkRepository) ArtistsByArtworkIDs(ctx context.Context, artworkIDs []string) (map[string][]domain.Person, error) {
	args := m.Called(ctx, artworkIDs)
	return args.Get(0).(map[string][]domain.Person), args.Error(1)
}

func (m *mockArtworkRepository) TermsByArtworkIDs(ctx context.Context, artworkIDs []string) (map[string][]string, error) {
	args := m.Called(ctx, artworkIDs)
	return args.Get(0).(map[string][]string), args.Error(1)
}

type mockSearchRepository struct {
	mock.Mock
}

func (m *mockSearchRepository) Search(ctx context.Context, criteria *search.Criteria) ([]repository.SearchHit, int, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]repository.SearchHit), args.Int(1), args.Error(2)
}

type mockPersonRepository struct {
	mock.Mock
}

func (m *mockPersonRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *mockPersonRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Person, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Person), args.Error(1)
}

type mockAlbumRepository struct {
	mock.Mock
}

func (m *mockAlbumRepository) Create(ctx context.Context, album *domain.Album) error {
	args := m.Called(ctx, album)
	return args.Error(0)
}

func (m *mockAlbumRepository) GetByID(ctx context.Context, id string) (*domain.Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}

func (m *mockAlbumRepository) ListForUser(ctx context.Context, userID string) ([]domain.Album, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Album), args.Error(1)
}

func (m *mockAlbumRepository) Update(ctx context.Context, album *domain.Album) error {
	args := m.Called(ctx, album)
	return args.Error(0)
}

func (m *mockAlbumRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAlbumRepository) AppendArtwork(ctx context.Context, albumID, artworkID string) error {
	args := m.Called(ctx, albumID, artworkID)
	return args.Error(0)
}

func (m *mockAlbumRepository) RemoveArtwork(ctx context.Context, albumID, artworkID string) error {
	args := m.Called(ctx, albumID, artworkID)
	return args.Error(0)
}

func (m *mockAlbumRepository) Permissions(ctx context.Context, albumID string) ([]domain.AlbumPermission, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).([]domain.AlbumPermission), args.Error(1)
}

func (m *mockAlbumRepository) UpsertPermission(ctx context.Context, perm *domain.AlbumPermission) error {
	args := m.Called(ctx, perm)
	return args.Error(0)
}

func (m *mockAlbumRepository) DeletePermission(ctx context.Context, albumID, userID string) error {
	args := m.Called(ctx, albumID, userID)
	return args.Error(0)
}

type mockFolderRepository struct {
	mock.Mock
}

func (m *mockFolderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *mockFolderRepository) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *mockFolderRepository) ListForUser(ctx context.Context, userID string) ([]domain.Folder, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Folder), args.Error(1)
}

func (m *mockFolderRepository) Update(ctx context.Context, folder *domain.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *mockFolderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockFolderRepository) GetRootForUser(ctx context.Context, userID string) (*domain.Folder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folder), args.Error(1)
}

func (m *mockFolderRepository) AddAlbum(ctx context.Context, folderID, albumID string) error {
	args := m.Called(ctx, folderID, albumID)
	return args.Error(0)
}

func (m *mockFolderRepository) RemoveAlbum(ctx context.Context, folderID, albumID string) error {
	args := m.Called(ctx, folderID, albumID)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockIndexRepository struct {
	mock.Mock
}

func (m *mockIndexRepository) Rebuild(ctx context.Context, artworkID string) error {
	args := m.Called(ctx, artworkID)
	return args.Error(0)
}

func (m *mockIndexRepository) DependentsOnPerson(ctx context.Context, personID int64) ([]string, error) {
	args := m.Called(ctx, personID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockIndexRepository) DependentsOnKeyword(ctx context.Context, keywordID int64) ([]string, error) {
	args := m.Called(ctx, keywordID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockIndexRepository) DependentsOnLocation(ctx context.Context, locationID int64) ([]string, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockIndexRepository) DependentsOnMaterial(ctx context.Context, materialID int64) ([]string, error) {
	args := m.Called(ctx, materialID)
	return args.Get(0).([]string), args.Error(1)
}

type mockAutocompleteRepository struct {
	mock.Mock
}

func (m *mockAutocompleteRepository) Titles(ctx context.Context, q string, limit int) ([]repository.Suggestion, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]repository.Suggestion), args.Error(1)
}

func (m *mockAutocompleteRepository) Artists(ctx context.Context, q string, limit int) ([]repository.Suggestion, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]repository.Suggestion), args.Error(1)
}

func (m *mockAutocompleteRepository) Keywords(ctx context.Context, q, lang string, limit int) ([]repository.Suggestion, error) {
	args := m.Called(ctx, q, lang, limit)
	return args.Get(0).([]repository.Suggestion), args.Error(1)
}

func (m *mockAutocompleteRepository) Locations(ctx context.Context, q, lang string, limit int) ([]repository.Suggestion, error) {
	args := m.Called(ctx, q, lang, limit)
	return args.Get(0).([]repository.Suggestion), args.Error(1)
}

func (m *mockAutocompleteRepository) Users(ctx context.Context, q string, limit int) ([]repository.Suggestion, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]repository.Suggestion), args.Error(1)
}

func (m *mockAutocompleteRepository) EditableAlbums(ctx context.Context, userID, q string, limit int) ([]repository.Suggestion, error) {
	args := m.Called(ctx, userID, q, limit)
	return args.Get(0).([]repository.Suggestion), args.Error(1)
}

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer returns an event producer backed by a Kafka writer that
// fails silently in tests (no real broker behind it).
func newTestProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

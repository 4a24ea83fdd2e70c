package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/event"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/internal/search"
	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/pkg/health"
	pkgkafka "github.com/base-angewandte/image-backend-sub000/pkg/kafka"
	"github.com/base-angewandte/image-backend-sub000/pkg/middleware"
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

type mockTaxonomyRepository struct {
	mock.Mock
}

func (m *mockTaxonomyRepository) GetKeyword(ctx context.Context, id int64) (*domain.Keyword, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *mockTaxonomyRepository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *mockTaxonomyRepository) KeywordDescendants(ctx context.Context, id int64) ([]int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockTaxonomyRepository) LocationDescendants(ctx context.Context, id int64) ([]int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]int64), args.Error(1)
}

type mockTermRepository struct {
	mock.Mock
}

func (m *mockTermRepository) List(ctx context.Context) ([]domain.DiscriminatoryTerm, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DiscriminatoryTerm), args.Error(1)
}

// --- Test helpers ---

type testMocks struct {
	searchRepo       *mockSearchRepository
	artworkRepo      *mockArtworkRepository
	personRepo       *mockPersonRepository
	albumRepo        *mockAlbumRepository
	folderRepo       *mockFolderRepository
	userRepo         *mockUserRepository
	autocompleteRepo *mockAutocompleteRepository
	termRepo         *mockTermRepository
	taxonomyRepo     *mockTaxonomyRepository
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testEventProducer returns a producer over a Kafka writer with no broker
// behind it; publish failures are logged and swallowed by the services.
func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

// newTestRouter wires the full router over mock repositories.
func newTestRouter() (http.Handler, *testMocks) {
	logger := testLogger()
	m := &testMocks{
		searchRepo:       new(mockSearchRepository),
		artworkRepo:      new(mockArtworkRepository),
		personRepo:       new(mockPersonRepository),
		albumRepo:        new(mockAlbumRepository),
		folderRepo:       new(mockFolderRepository),
		userRepo:         new(mockUserRepository),
		autocompleteRepo: new(mockAutocompleteRepository),
		termRepo:         new(mockTermRepository),
		taxonomyRepo:     new(mockTaxonomyRepository),
	}

	producer := testEventProducer()

	cfg := RouterConfig{
		SearchService:       service.NewSearchService(m.searchRepo, m.artworkRepo, "https://media.example.org", logger),
		AutocompleteService: service.NewAutocompleteService(m.autocompleteRepo, logger),
		ArtworkService:      service.NewArtworkService(m.artworkRepo, m.personRepo, producer, logger),
		AlbumService:        service.NewAlbumService(m.albumRepo, m.artworkRepo, m.userRepo, logger),
		FolderService:       service.NewFolderService(m.folderRepo, m.albumRepo, logger),
		TermService:         service.NewDiscriminatoryTermService(m.termRepo),
		TaxonomyRepo:        m.taxonomyRepo,
		UserRepo:            m.userRepo,
		HealthHandler:       health.NewHandler(),
		CORS:                middleware.CORSConfig{AllowedOrigins: []string{"*"}},
		ServiceName:         "image-backend",
	}

	return NewRouter(cfg, logger), m
}

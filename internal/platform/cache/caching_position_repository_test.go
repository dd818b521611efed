package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"trading_dashboard/internal/feature/portfolio/domain/entity"
)

// mockPositionRepository はテスト用のPositionRepositoryモック実装です。
type mockPositionRepository struct {
	listFn   func(ctx context.Context) ([]entity.Position, error)
	createFn func(ctx context.Context, position *entity.Position) error
	deleteFn func(ctx context.Context, id uint) error
	calls    int
}

func (m *mockPositionRepository) List(ctx context.Context) ([]entity.Position, error) {
	m.calls++
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPositionRepository) FindByID(ctx context.Context, id uint) (entity.Position, error) {
	return entity.Position{}, nil
}

func (m *mockPositionRepository) Create(ctx context.Context, position *entity.Position) error {
	if m.createFn != nil {
		return m.createFn(ctx, position)
	}
	return nil
}

func (m *mockPositionRepository) Update(ctx context.Context, position *entity.Position) error {
	return nil
}

func (m *mockPositionRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// TestNewCachingPositionRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingPositionRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "positions",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingPositionRepository(nil, tt.ttl, &mockPositionRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingPositionRepository_List_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingPositionRepository_List_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockPositionRepository{
		listFn: func(ctx context.Context) ([]entity.Position, error) {
			return []entity.Position{{ID: 1, Ticker: "AAPL", Qty: 10, Basis: 1500}}, nil
		},
	}
	repo := NewCachingPositionRepository(nil, 5*time.Minute, inner, "positions")

	positions, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 1 {
		t.Errorf("expected 1 position, got %d", len(positions))
	}
	if inner.calls != 1 {
		t.Errorf("expected inner repository call, got %d calls", inner.calls)
	}
}

// TestCachingPositionRepository_List_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingPositionRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Position{{ID: 1, Ticker: "AAPL", Qty: 10, Basis: 1500}}
	payload, _ := json.Marshal(cached)
	mock.ExpectGet("positions:all").SetVal(string(payload))

	inner := &mockPositionRepository{}
	repo := NewCachingPositionRepository(rdb, 5*time.Minute, inner, "positions")

	positions, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 1 || positions[0].Ticker != "AAPL" {
		t.Errorf("expected cached positions, got %+v", positions)
	}
	if inner.calls != 0 {
		t.Errorf("expected no inner calls on cache hit, got %d", inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingPositionRepository_List_CacheMissStores はキャッシュミス時にDBへフォールバックし、結果を保存することを検証します。
func TestCachingPositionRepository_List_CacheMissStores(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	fresh := []entity.Position{{ID: 2, Ticker: "MSFT", Qty: 5, Basis: 2100}}
	payload, _ := json.Marshal(fresh)

	mock.ExpectGet("positions:all").RedisNil()
	mock.ExpectSet("positions:all", payload, 5*time.Minute).SetVal("OK")

	inner := &mockPositionRepository{
		listFn: func(ctx context.Context) ([]entity.Position, error) {
			return fresh, nil
		},
	}
	repo := NewCachingPositionRepository(rdb, 5*time.Minute, inner, "positions")

	positions, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 1 || positions[0].Ticker != "MSFT" {
		t.Errorf("expected fresh positions, got %+v", positions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingPositionRepository_List_CorruptEntry は壊れたキャッシュエントリを破棄してDBへフォールバックすることを検証します。
func TestCachingPositionRepository_List_CorruptEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	fresh := []entity.Position{{ID: 1, Ticker: "AAPL", Qty: 10, Basis: 1500}}
	payload, _ := json.Marshal(fresh)

	mock.ExpectGet("positions:all").SetVal("{not json")
	mock.ExpectDel("positions:all").SetVal(1)
	mock.ExpectSet("positions:all", payload, 5*time.Minute).SetVal("OK")

	inner := &mockPositionRepository{
		listFn: func(ctx context.Context) ([]entity.Position, error) {
			return fresh, nil
		},
	}
	repo := NewCachingPositionRepository(rdb, 5*time.Minute, inner, "positions")

	positions, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 1 {
		t.Errorf("expected fallback positions, got %+v", positions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingPositionRepository_Create_Invalidates は書き込み成功時にキャッシュを無効化することを検証します。
func TestCachingPositionRepository_Create_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("positions:all").SetVal(1)

	repo := NewCachingPositionRepository(rdb, 5*time.Minute, &mockPositionRepository{}, "positions")

	if err := repo.Create(context.Background(), &entity.Position{Ticker: "AAPL"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

// TestCachingPositionRepository_Create_ErrorSkipsInvalidation は書き込み失敗時にキャッシュへ触れないことを検証します。
func TestCachingPositionRepository_Create_ErrorSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	wantErr := errors.New("db down")
	inner := &mockPositionRepository{
		createFn: func(ctx context.Context, position *entity.Position) error {
			return wantErr
		},
	}
	repo := NewCachingPositionRepository(rdb, 5*time.Minute, inner, "positions")

	err := repo.Create(context.Background(), &entity.Position{Ticker: "AAPL"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis activity: %v", err)
	}
}

// TestCachingPositionRepository_Delete_Invalidates は削除成功時にキャッシュを無効化することを検証します。
func TestCachingPositionRepository_Delete_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("positions:all").SetVal(1)

	repo := NewCachingPositionRepository(rdb, 5*time.Minute, &mockPositionRepository{}, "positions")

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

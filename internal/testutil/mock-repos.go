package testutil

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"model-artifact-registry/internal/domain"
)

// MockModelRepo is a mock of ModelRepository.
type MockModelRepo struct {
	mock.Mock
}

func (m *MockModelRepo) Create(ctx context.Context, model *domain.Model) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockModelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Model, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Model), args.Error(1)
}

func (m *MockModelRepo) GetByStorageKey(ctx context.Context, key string) (*domain.Model, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Model), args.Error(1)
}

func (m *MockModelRepo) List(ctx context.Context) ([]*domain.Model, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Model), args.Error(1)
}

func (m *MockModelRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockModelRepo) Update(ctx context.Context, model *domain.Model) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockModelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVersionRepo is a mock of VersionRepository.
type MockVersionRepo struct {
	mock.Mock
}

func (m *MockVersionRepo) Create(ctx context.Context, version *domain.Version) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockVersionRepo) GetByModelAndNumber(ctx context.Context, modelID uuid.UUID, versionNumber int) (*domain.Version, error) {
	args := m.Called(ctx, modelID, versionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Version), args.Error(1)
}

func (m *MockVersionRepo) ListByModel(ctx context.Context, modelID uuid.UUID) ([]*domain.Version, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Version), args.Error(1)
}

func (m *MockVersionRepo) Delete(ctx context.Context, modelID uuid.UUID, versionNumber int) error {
	args := m.Called(ctx, modelID, versionNumber)
	return args.Error(0)
}

// MockAliasRepo is a mock of AliasRepository.
type MockAliasRepo struct {
	mock.Mock
}

func (m *MockAliasRepo) Create(ctx context.Context, alias *domain.Alias) error {
	args := m.Called(ctx, alias)
	return args.Error(0)
}

func (m *MockAliasRepo) GetByName(ctx context.Context, name string) (*domain.Alias, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alias), args.Error(1)
}

// MockStore is a mock of storage.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, fileName, modelKey string, version int, src io.Reader) error {
	args := m.Called(ctx, fileName, modelKey, version, src)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, fileName, modelKey string, version int) (bool, error) {
	args := m.Called(ctx, fileName, modelKey, version)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Resolve(ctx context.Context, fileName, modelKey string, version int) (string, error) {
	args := m.Called(ctx, fileName, modelKey, version)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Exists(ctx context.Context, fileName, modelKey string, version int) (bool, error) {
	args := m.Called(ctx, fileName, modelKey, version)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ListFiles(ctx context.Context, modelKey string, version int) ([]string, error) {
	args := m.Called(ctx, modelKey, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

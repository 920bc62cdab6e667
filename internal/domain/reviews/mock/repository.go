package mock

import (
	context "context"
	reflect "reflect"

	bids "github.com/carrybid/carrybid/internal/domain/bids"
	reviews "github.com/carrybid/carrybid/internal/domain/reviews"
	gomock "go.uber.org/mock/gomock"
)

// MockRepository is a mock of Repository interface.
type MockRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder
	isgomock struct{}
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder struct {
	mock *MockRepository
}

// NewMockRepository creates a new mock instance.
func NewMockRepository(ctrl *gomock.Controller) *MockRepository {
	mock := &MockRepository{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository) EXPECT() *MockRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockRepository) Create(ctx context.Context, review *reviews.Review) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, review)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockRepositoryMockRecorder) Create(ctx, review any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockRepository)(nil).Create), ctx, review)
}

// ListByTarget mocks base method.
func (m *MockRepository) ListByTarget(ctx context.Context, userID string) ([]reviews.Review, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByTarget", ctx, userID)
	ret0, _ := ret[0].([]reviews.Review)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByTarget indicates an expected call of ListByTarget.
func (mr *MockRepositoryMockRecorder) ListByTarget(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByTarget", reflect.TypeOf((*MockRepository)(nil).ListByTarget), ctx, userID)
}

// MockBids is a mock of Bids interface.
type MockBids struct {
	ctrl     *gomock.Controller
	recorder *MockBidsMockRecorder
	isgomock struct{}
}

// MockBidsMockRecorder is the mock recorder for MockBids.
type MockBidsMockRecorder struct {
	mock *MockBids
}

// NewMockBids creates a new mock instance.
func NewMockBids(ctrl *gomock.Controller) *MockBids {
	mock := &MockBids{ctrl: ctrl}
	mock.recorder = &MockBidsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBids) EXPECT() *MockBidsMockRecorder {
	return m.recorder
}

// Get mocks base method.
func (m *MockBids) Get(ctx context.Context, id string) (*bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockBidsMockRecorder) Get(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockBids)(nil).Get), ctx, id)
}

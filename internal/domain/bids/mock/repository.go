package mock

import (
	context "context"
	reflect "reflect"

	bids "github.com/carrybid/carrybid/internal/domain/bids"
	listings "github.com/carrybid/carrybid/internal/domain/listings"
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

// CountByPost mocks base method.
func (m *MockRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountByPost", ctx, postID)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountByPost indicates an expected call of CountByPost.
func (mr *MockRepositoryMockRecorder) CountByPost(ctx, postID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountByPost", reflect.TypeOf((*MockRepository)(nil).CountByPost), ctx, postID)
}

// Create mocks base method.
func (m *MockRepository) Create(ctx context.Context, bid *bids.Bid) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, bid)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockRepositoryMockRecorder) Create(ctx, bid any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockRepository)(nil).Create), ctx, bid)
}

// Delete mocks base method.
func (m *MockRepository) Delete(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockRepositoryMockRecorder) Delete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockRepository)(nil).Delete), ctx, id)
}

// FindActive mocks base method.
func (m *MockRepository) FindActive(ctx context.Context, postID string, bidderID string) (*bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindActive", ctx, postID, bidderID)
	ret0, _ := ret[0].(*bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindActive indicates an expected call of FindActive.
func (mr *MockRepositoryMockRecorder) FindActive(ctx, postID, bidderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindActive", reflect.TypeOf((*MockRepository)(nil).FindActive), ctx, postID, bidderID)
}

// Get mocks base method.
func (m *MockRepository) Get(ctx context.Context, id string) (*bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockRepositoryMockRecorder) Get(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockRepository)(nil).Get), ctx, id)
}

// ListByBidder mocks base method.
func (m *MockRepository) ListByBidder(ctx context.Context, bidderID string) ([]bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByBidder", ctx, bidderID)
	ret0, _ := ret[0].([]bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByBidder indicates an expected call of ListByBidder.
func (mr *MockRepositoryMockRecorder) ListByBidder(ctx, bidderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByBidder", reflect.TypeOf((*MockRepository)(nil).ListByBidder), ctx, bidderID)
}

// ListByPost mocks base method.
func (m *MockRepository) ListByPost(ctx context.Context, postID string) ([]bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByPost", ctx, postID)
	ret0, _ := ret[0].([]bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByPost indicates an expected call of ListByPost.
func (mr *MockRepositoryMockRecorder) ListByPost(ctx, postID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByPost", reflect.TypeOf((*MockRepository)(nil).ListByPost), ctx, postID)
}

// ListByPostOwner mocks base method.
func (m *MockRepository) ListByPostOwner(ctx context.Context, ownerID string) ([]bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByPostOwner", ctx, ownerID)
	ret0, _ := ret[0].([]bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByPostOwner indicates an expected call of ListByPostOwner.
func (mr *MockRepositoryMockRecorder) ListByPostOwner(ctx, ownerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByPostOwner", reflect.TypeOf((*MockRepository)(nil).ListByPostOwner), ctx, ownerID)
}

// Update mocks base method.
func (m *MockRepository) Update(ctx context.Context, bid *bids.Bid) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, bid)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockRepositoryMockRecorder) Update(ctx, bid any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockRepository)(nil).Update), ctx, bid)
}

// MockPosts is a mock of Posts interface.
type MockPosts struct {
	ctrl     *gomock.Controller
	recorder *MockPostsMockRecorder
	isgomock struct{}
}

// MockPostsMockRecorder is the mock recorder for MockPosts.
type MockPostsMockRecorder struct {
	mock *MockPosts
}

// NewMockPosts creates a new mock instance.
func NewMockPosts(ctrl *gomock.Controller) *MockPosts {
	mock := &MockPosts{ctrl: ctrl}
	mock.recorder = &MockPostsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPosts) EXPECT() *MockPostsMockRecorder {
	return m.recorder
}

// Get mocks base method.
func (m *MockPosts) Get(ctx context.Context, id string) (*listings.Post, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*listings.Post)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockPostsMockRecorder) Get(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockPosts)(nil).Get), ctx, id)
}

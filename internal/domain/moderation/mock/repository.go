package mock

import (
	context "context"
	reflect "reflect"

	actor "github.com/carrybid/carrybid/internal/domain/actor"
	moderation "github.com/carrybid/carrybid/internal/domain/moderation"
	users "github.com/carrybid/carrybid/internal/domain/users"
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

// Archive mocks base method.
func (m *MockRepository) Archive(ctx context.Context, postID string, entry moderation.Archive) (*moderation.Archive, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Archive", ctx, postID, entry)
	ret0, _ := ret[0].(*moderation.Archive)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Archive indicates an expected call of Archive.
func (mr *MockRepositoryMockRecorder) Archive(ctx, postID, entry any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Archive", reflect.TypeOf((*MockRepository)(nil).Archive), ctx, postID, entry)
}

// GetArchive mocks base method.
func (m *MockRepository) GetArchive(ctx context.Context, id string) (*moderation.Archive, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetArchive", ctx, id)
	ret0, _ := ret[0].(*moderation.Archive)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetArchive indicates an expected call of GetArchive.
func (mr *MockRepositoryMockRecorder) GetArchive(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetArchive", reflect.TypeOf((*MockRepository)(nil).GetArchive), ctx, id)
}

// ListArchive mocks base method.
func (m *MockRepository) ListArchive(ctx context.Context) ([]moderation.Archive, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListArchive", ctx)
	ret0, _ := ret[0].([]moderation.Archive)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListArchive indicates an expected call of ListArchive.
func (mr *MockRepositoryMockRecorder) ListArchive(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListArchive", reflect.TypeOf((*MockRepository)(nil).ListArchive), ctx)
}

// Restore mocks base method.
func (m *MockRepository) Restore(ctx context.Context, archiveID string) (*moderation.Archive, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Restore", ctx, archiveID)
	ret0, _ := ret[0].(*moderation.Archive)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Restore indicates an expected call of Restore.
func (mr *MockRepositoryMockRecorder) Restore(ctx, archiveID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Restore", reflect.TypeOf((*MockRepository)(nil).Restore), ctx, archiveID)
}

// MockUsers is a mock of Users interface.
type MockUsers struct {
	ctrl     *gomock.Controller
	recorder *MockUsersMockRecorder
	isgomock struct{}
}

// MockUsersMockRecorder is the mock recorder for MockUsers.
type MockUsersMockRecorder struct {
	mock *MockUsers
}

// NewMockUsers creates a new mock instance.
func NewMockUsers(ctrl *gomock.Controller) *MockUsers {
	mock := &MockUsers{ctrl: ctrl}
	mock.recorder = &MockUsersMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUsers) EXPECT() *MockUsersMockRecorder {
	return m.recorder
}

// ReviewVerification mocks base method.
func (m *MockUsers) ReviewVerification(ctx context.Context, id string, approve bool, reason string) (*users.User, users.VerificationStatus, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReviewVerification", ctx, id, approve, reason)
	ret0, _ := ret[0].(*users.User)
	ret1, _ := ret[1].(users.VerificationStatus)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ReviewVerification indicates an expected call of ReviewVerification.
func (mr *MockUsersMockRecorder) ReviewVerification(ctx, id, approve, reason any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReviewVerification", reflect.TypeOf((*MockUsers)(nil).ReviewVerification), ctx, id, approve, reason)
}

// SetBanned mocks base method.
func (m *MockUsers) SetBanned(ctx context.Context, id string, banned bool) (*users.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetBanned", ctx, id, banned)
	ret0, _ := ret[0].(*users.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SetBanned indicates an expected call of SetBanned.
func (mr *MockUsersMockRecorder) SetBanned(ctx, id, banned any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBanned", reflect.TypeOf((*MockUsers)(nil).SetBanned), ctx, id, banned)
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

// Delete mocks base method.
func (m *MockBids) Delete(ctx context.Context, by actor.Actor, bidID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, by, bidID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockBidsMockRecorder) Delete(ctx, by, bidID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockBids)(nil).Delete), ctx, by, bidID)
}

package mock

import (
	context "context"
	reflect "reflect"

	actor "github.com/carrybid/carrybid/internal/domain/actor"
	bids "github.com/carrybid/carrybid/internal/domain/bids"
	conversations "github.com/carrybid/carrybid/internal/domain/conversations"
	notifications "github.com/carrybid/carrybid/internal/domain/notifications"
	gomock "go.uber.org/mock/gomock"
)

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

// Accept mocks base method.
func (m *MockBids) Accept(ctx context.Context, by actor.Actor, bidID string) (*bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Accept", ctx, by, bidID)
	ret0, _ := ret[0].(*bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Accept indicates an expected call of Accept.
func (mr *MockBidsMockRecorder) Accept(ctx, by, bidID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Accept", reflect.TypeOf((*MockBids)(nil).Accept), ctx, by, bidID)
}

// Get mocks base method.
func (m *MockBids) Get(ctx context.Context, bidID string) (*bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, bidID)
	ret0, _ := ret[0].(*bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockBidsMockRecorder) Get(ctx, bidID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockBids)(nil).Get), ctx, bidID)
}

// MockConversations is a mock of Conversations interface.
type MockConversations struct {
	ctrl     *gomock.Controller
	recorder *MockConversationsMockRecorder
	isgomock struct{}
}

// MockConversationsMockRecorder is the mock recorder for MockConversations.
type MockConversationsMockRecorder struct {
	mock *MockConversations
}

// NewMockConversations creates a new mock instance.
func NewMockConversations(ctrl *gomock.Controller) *MockConversations {
	mock := &MockConversations{ctrl: ctrl}
	mock.recorder = &MockConversationsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockConversations) EXPECT() *MockConversationsMockRecorder {
	return m.recorder
}

// GetOrCreate mocks base method.
func (m *MockConversations) GetOrCreate(ctx context.Context, a actor.Ref, b actor.Ref, seed string) (*conversations.Conversation, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOrCreate", ctx, a, b, seed)
	ret0, _ := ret[0].(*conversations.Conversation)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetOrCreate indicates an expected call of GetOrCreate.
func (mr *MockConversationsMockRecorder) GetOrCreate(ctx, a, b, seed any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOrCreate", reflect.TypeOf((*MockConversations)(nil).GetOrCreate), ctx, a, b, seed)
}

// MockNotifier is a mock of Notifier interface.
type MockNotifier struct {
	ctrl     *gomock.Controller
	recorder *MockNotifierMockRecorder
	isgomock struct{}
}

// MockNotifierMockRecorder is the mock recorder for MockNotifier.
type MockNotifierMockRecorder struct {
	mock *MockNotifier
}

// NewMockNotifier creates a new mock instance.
func NewMockNotifier(ctrl *gomock.Controller) *MockNotifier {
	mock := &MockNotifier{ctrl: ctrl}
	mock.recorder = &MockNotifierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNotifier) EXPECT() *MockNotifierMockRecorder {
	return m.recorder
}

// Emit mocks base method.
func (m *MockNotifier) Emit(userID string, n notifications.Notification) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Emit", userID, n)
}

// Emit indicates an expected call of Emit.
func (mr *MockNotifierMockRecorder) Emit(userID, n any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Emit", reflect.TypeOf((*MockNotifier)(nil).Emit), userID, n)
}

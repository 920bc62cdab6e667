package mock

import (
	context "context"
	reflect "reflect"

	bids "github.com/carrybid/carrybid/internal/domain/bids"
	conversations "github.com/carrybid/carrybid/internal/domain/conversations"
	gomock "go.uber.org/mock/gomock"
)

// MockBidReader is a mock of BidReader interface.
type MockBidReader struct {
	ctrl     *gomock.Controller
	recorder *MockBidReaderMockRecorder
	isgomock struct{}
}

// MockBidReaderMockRecorder is the mock recorder for MockBidReader.
type MockBidReaderMockRecorder struct {
	mock *MockBidReader
}

// NewMockBidReader creates a new mock instance.
func NewMockBidReader(ctrl *gomock.Controller) *MockBidReader {
	mock := &MockBidReader{ctrl: ctrl}
	mock.recorder = &MockBidReaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBidReader) EXPECT() *MockBidReaderMockRecorder {
	return m.recorder
}

// ListByBidder mocks base method.
func (m *MockBidReader) ListByBidder(ctx context.Context, bidderID string) ([]bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByBidder", ctx, bidderID)
	ret0, _ := ret[0].([]bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByBidder indicates an expected call of ListByBidder.
func (mr *MockBidReaderMockRecorder) ListByBidder(ctx, bidderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByBidder", reflect.TypeOf((*MockBidReader)(nil).ListByBidder), ctx, bidderID)
}

// ListByPostOwner mocks base method.
func (m *MockBidReader) ListByPostOwner(ctx context.Context, ownerID string) ([]bids.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByPostOwner", ctx, ownerID)
	ret0, _ := ret[0].([]bids.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByPostOwner indicates an expected call of ListByPostOwner.
func (mr *MockBidReaderMockRecorder) ListByPostOwner(ctx, ownerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByPostOwner", reflect.TypeOf((*MockBidReader)(nil).ListByPostOwner), ctx, ownerID)
}

// MockConversationReader is a mock of ConversationReader interface.
type MockConversationReader struct {
	ctrl     *gomock.Controller
	recorder *MockConversationReaderMockRecorder
	isgomock struct{}
}

// MockConversationReaderMockRecorder is the mock recorder for MockConversationReader.
type MockConversationReaderMockRecorder struct {
	mock *MockConversationReader
}

// NewMockConversationReader creates a new mock instance.
func NewMockConversationReader(ctrl *gomock.Controller) *MockConversationReader {
	mock := &MockConversationReader{ctrl: ctrl}
	mock.recorder = &MockConversationReaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockConversationReader) EXPECT() *MockConversationReaderMockRecorder {
	return m.recorder
}

// ListByParticipant mocks base method.
func (m *MockConversationReader) ListByParticipant(ctx context.Context, userID string) ([]conversations.Conversation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByParticipant", ctx, userID)
	ret0, _ := ret[0].([]conversations.Conversation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByParticipant indicates an expected call of ListByParticipant.
func (mr *MockConversationReaderMockRecorder) ListByParticipant(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByParticipant", reflect.TypeOf((*MockConversationReader)(nil).ListByParticipant), ctx, userID)
}

// Messages mocks base method.
func (m *MockConversationReader) Messages(ctx context.Context, conversationID string) ([]conversations.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Messages", ctx, conversationID)
	ret0, _ := ret[0].([]conversations.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Messages indicates an expected call of Messages.
func (mr *MockConversationReaderMockRecorder) Messages(ctx, conversationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Messages", reflect.TypeOf((*MockConversationReader)(nil).Messages), ctx, conversationID)
}

package mock

import (
	context "context"
	reflect "reflect"

	conversations "github.com/carrybid/carrybid/internal/domain/conversations"
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

// AppendMessage mocks base method.
func (m *MockRepository) AppendMessage(ctx context.Context, m0 *conversations.Message, preview string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AppendMessage", ctx, m0, preview)
	ret0, _ := ret[0].(error)
	return ret0
}

// AppendMessage indicates an expected call of AppendMessage.
func (mr *MockRepositoryMockRecorder) AppendMessage(ctx, m, preview any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendMessage", reflect.TypeOf((*MockRepository)(nil).AppendMessage), ctx, m, preview)
}

// Create mocks base method.
func (m *MockRepository) Create(ctx context.Context, conversation *conversations.Conversation) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, conversation)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockRepositoryMockRecorder) Create(ctx, conversation any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockRepository)(nil).Create), ctx, conversation)
}

// Get mocks base method.
func (m *MockRepository) Get(ctx context.Context, id string) (*conversations.Conversation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*conversations.Conversation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockRepositoryMockRecorder) Get(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockRepository)(nil).Get), ctx, id)
}

// ListByParticipant mocks base method.
func (m *MockRepository) ListByParticipant(ctx context.Context, userID string) ([]conversations.Conversation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByParticipant", ctx, userID)
	ret0, _ := ret[0].([]conversations.Conversation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByParticipant indicates an expected call of ListByParticipant.
func (mr *MockRepositoryMockRecorder) ListByParticipant(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByParticipant", reflect.TypeOf((*MockRepository)(nil).ListByParticipant), ctx, userID)
}

// Messages mocks base method.
func (m *MockRepository) Messages(ctx context.Context, conversationID string) ([]conversations.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Messages", ctx, conversationID)
	ret0, _ := ret[0].([]conversations.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Messages indicates an expected call of Messages.
func (mr *MockRepositoryMockRecorder) Messages(ctx, conversationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Messages", reflect.TypeOf((*MockRepository)(nil).Messages), ctx, conversationID)
}
